package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/middleware"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/websocket"
)

type CreateEnquiryRequest struct {
	ParlorEmail string `json:"parlor_email" validate:"required,email"`
	UserMessage string `json:"user_message" validate:"required,min=1"`
}

func CreateEnquiry(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var req CreateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", userEmail).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	enquiry := models.Enquiry{
		UserID:      user.ID,
		ParlorEmail: req.ParlorEmail,
		Email:       userEmail,
		UserMessage: req.UserMessage,
		Status:      "new",
	}
	if err := database.DB.Create(&enquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create enquiry"})
	}

	go websocket.NotifyShop(req.ParlorEmail, websocket.Event{
		Type:    "enquiry_created",
		Payload: fiber.Map{"enquiry_id": enquiry.ID, "email": userEmail},
	})

	return c.Status(fiber.StatusCreated).JSON(enquiry)
}

func GetShopEnquiries(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var enquiries []models.Enquiry
	database.DB.Where("parlor_email = ?", shopEmail).Order("created_at desc").Find(&enquiries)

	return c.JSON(enquiries)
}

type ReplyEnquiryRequest struct {
	SpMessage string `json:"sp_message" validate:"required,min=1"`
	Status    string `json:"status" validate:"omitempty,oneof=new all approved"`
}

func ReplyEnquiry(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)
	enquiryID := c.Params("enquiryId")

	var req ReplyEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{"sp_message": req.SpMessage}
	if req.Status != "" {
		updates["status"] = req.Status
	} else {
		updates["status"] = "approved"
	}

	result := database.DB.Model(&models.Enquiry{}).
		Where("id = ? AND parlor_email = ?", enquiryID, shopEmail).
		Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update enquiry"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enquiry not found"})
	}

	return c.JSON(fiber.Map{"message": "Enquiry updated successfully"})
}

func DeleteEnquiry(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)
	enquiryID := c.Params("enquiryId")

	result := database.DB.Where("id = ? AND email = ?", enquiryID, userEmail).Delete(&models.Enquiry{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete enquiry"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enquiry not found"})
	}

	return c.JSON(fiber.Map{"message": "Enquiry deleted successfully"})
}

func GetUserEnquiries(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var enquiries []models.Enquiry
	database.DB.Where("email = ?", userEmail).Order("created_at desc").Find(&enquiries)

	return c.JSON(enquiries)
}
