package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
	"github.com/rithika04/salon_spot/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/users", handlers.ListUsers)
	admin.Delete("/users/:id", handlers.DeleteUser)
	admin.Get("/shops", handlers.ListAllShops)
	admin.Get("/shops/pending", handlers.ListPendingShops)
	admin.Post("/shops/:id/approve", handlers.ApproveShop)
	admin.Post("/shops/:id/reject", handlers.RejectShop)
	admin.Put("/shops/:id/priority", handlers.UpdateShopPriority)
	admin.Get("/revenue", handlers.Revenue)
}
