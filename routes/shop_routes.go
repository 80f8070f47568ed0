package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
	"github.com/rithika04/salon_spot/middleware"
)

func ShopRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	shop := api.Group("/shop", middleware.Protected(), middleware.ShopRequired())
	shop.Post("/manpower", handlers.AddManpower)
	shop.Put("/manpower/:id", handlers.UpdateManpower)
	shop.Delete("/manpower/:id", handlers.DeleteManpower)
	shop.Post("/services", handlers.AddService)
	shop.Put("/services/:id", handlers.UpdateService)
	shop.Delete("/services/:id", handlers.DeleteService)

	shopEnquiries := api.Group("/shop/enquiries", middleware.Protected(), middleware.ShopRequired())
	shopEnquiries.Get("", handlers.GetShopEnquiries)
	shopEnquiries.Put("/:enquiryId", handlers.ReplyEnquiry)

	api.Post("/shops/rating/recompute", middleware.Protected(), handlers.UpdateShopRating)
}
