package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
	"github.com/rithika04/salon_spot/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// The webhook is called by the gateway, not by an authenticated client;
	// it is authenticated by its HMAC signature instead.
	api.Post("/payments/webhook", handlers.HandleCashfreeWebhook)

	pay := api.Group("/payments", middleware.Protected())
	pay.Post("/create-order", handlers.CreateCashfreeOrder)
	pay.Post("/verify-client-signature", handlers.VerifyClientPayment)
	pay.Get("/:orderId", handlers.GetPaymentStatus)
}
