package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/handlers"
	"github.com/rithika04/salon_spot/middleware"
)

func EnquiryRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	enquiry := api.Group("/enquiries", middleware.Protected())
	enquiry.Post("", handlers.CreateEnquiry)
	enquiry.Get("/me", handlers.GetUserEnquiries)
	enquiry.Delete("/:enquiryId", handlers.DeleteEnquiry)
}
