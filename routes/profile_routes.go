package routes

import (
	"github.com/akashch1512/Prep-Tester/handlers"
	"github.com/akashch1512/Prep-Tester/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Put("/branch", handlers.SelectBranch)
	profile.Post("/picture", handlers.UploadProfilePicture)
	profile.Get("/stats", handlers.GetProfileStats)
}
