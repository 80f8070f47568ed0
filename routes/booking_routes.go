package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
	"github.com/rithika04/salon_spot/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Post("/:orderId/cancel", handlers.CancelBooking)
	booking.Post("/rating", handlers.RateBooking)
	booking.Post("/complaint", handlers.SubmitUserComplaint)
	booking.Post("/refund-action", middleware.ShopRequired(), handlers.RefundAction)

	shopBooking := api.Group("/shop/bookings", middleware.Protected(), middleware.ShopRequired())
	shopBooking.Get("/me", handlers.GetShopBookings)
	shopBooking.Post("/confirm", handlers.ConfirmBooking)
	shopBooking.Post("/collect-payment", handlers.CollectPayment)
	shopBooking.Post("/complaint", handlers.SubmitShopComplaint)
}
