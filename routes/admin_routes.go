package routes

import (
	"github.com/akashch1512/Prep-Tester/handlers"
	"github.com/akashch1512/Prep-Tester/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	branches := admin.Group("/branches")
	branches.Post("", handlers.CreateBranch)
	branches.Put("/:branchId", handlers.UpdateBranch)
	branches.Delete("/:branchId", handlers.DeleteBranch)

	subjects := admin.Group("/subjects")
	subjects.Post("", handlers.CreateSubject)
	subjects.Delete("/:subjectId", handlers.DeleteSubject)

	tests := admin.Group("/tests")
	tests.Post("", handlers.CreateTest)
	tests.Delete("/:testId", handlers.DeleteTest)

	questions := admin.Group("/questions")
	questions.Post("", handlers.CreateQuestion)
	questions.Put("/:questionId", handlers.UpdateQuestion)
	questions.Delete("/:questionId", handlers.DeleteQuestion)
}
