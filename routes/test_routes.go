package routes

import (
	"github.com/akashch1512/Prep-Tester/handlers"
	"github.com/akashch1512/Prep-Tester/middleware"
	"github.com/gofiber/fiber/v2"
)

func TestRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	tests := api.Group("/tests")
	tests.Post("/:testId/start", handlers.StartTest)
	tests.Get("/:testId/questions/:qIndex", handlers.GetQuestion)
	tests.Post("/:testId/questions/:qIndex", handlers.SubmitAnswer)
	tests.Get("/:testId/result", handlers.GetTestResult)

	api.Get("/history", handlers.GetHistory)
	api.Get("/dashboard", handlers.GetDashboard)
}
