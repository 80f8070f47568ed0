package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/shops", handlers.ListShops)
	api.Get("/shops/cards/services", handlers.ServiceCards)
	api.Get("/shops/:email", handlers.GetShop)
	api.Get("/shops/:email/manpower", handlers.GetManpower)
	api.Get("/shops/:email/services", handlers.GetServices)
	api.Get("/shops/:email/has-employees", handlers.CheckEmployees)
}
