package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/register-shop", handlers.RegisterShop)
	auth.Post("/login", handlers.Login)
	auth.Post("/forgot-password", handlers.ForgotPasswordSendOTP)
	auth.Post("/verify-otp", handlers.VerifyOTP)
	auth.Put("/update-password", handlers.UpdatePassword)
}
