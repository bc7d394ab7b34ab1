package routes

import (
	"github.com/akashch1512/Prep-Tester/handlers"
	"github.com/akashch1512/Prep-Tester/middleware"
	"github.com/gofiber/fiber/v2"
)

func CatalogRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Get("/branches", handlers.ListBranches)
	api.Get("/branches/:branchId/subjects", handlers.ListBranchSubjects)
	api.Get("/subjects/:subjectId/tests", handlers.ListSubjectTests)
	api.Get("/tests/:testId", handlers.GetTest)
}
