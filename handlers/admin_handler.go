package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/notifications"
)

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	database.DB.Order("created_at desc").Find(&users)
	return c.JSON(users)
}

func DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	// Account deletion is the only path that removes bookings.
	database.DB.Where("user_id = ?", user.ID).Delete(&models.Booking{})
	database.DB.Where("user_id = ?", user.ID).Delete(&models.Enquiry{})
	if err := database.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func ListAllShops(c *fiber.Ctx) error {
	var shops []models.Shop
	database.DB.Preload("Manpower").Preload("Services").Order("priority desc").Find(&shops)
	return c.JSON(shops)
}

func ListPendingShops(c *fiber.Ctx) error {
	var shops []models.Shop
	database.DB.Where("approved = ?", false).Order("created_at asc").Find(&shops)
	return c.JSON(shops)
}

func ApproveShop(c *fiber.Ctx) error {
	shopID := c.Params("id")

	var shop models.Shop
	if err := database.DB.Where("id = ?", shopID).First(&shop).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
	}
	if shop.Approved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Shop already approved"})
	}

	if err := database.DB.Model(&shop).Update("approved", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve shop"})
	}

	go notifications.SendEmail(shop.Name, shop.Email, "Your Shop has been Approved!",
		"<h1>Congratulations!</h1><p>Your shop "+shop.ShopName+" is now live on Salon Spot. You can log in and start accepting bookings.</p>")

	return c.JSON(fiber.Map{"message": "Shop approved successfully"})
}

func RejectShop(c *fiber.Ctx) error {
	shopID := c.Params("id")

	var shop models.Shop
	if err := database.DB.Where("id = ?", shopID).First(&shop).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
	}

	if err := database.DB.Delete(&shop).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject shop"})
	}

	go notifications.SendEmail(shop.Name, shop.Email, "Update on Your Shop Application",
		"<h1>Application Update</h1><p>We regret to inform you that your shop application was not approved at this time.</p>")

	return c.JSON(fiber.Map{"message": "Shop rejected successfully"})
}

type UpdatePriorityRequest struct {
	Priority int `json:"priority" validate:"gte=0"`
}

func UpdateShopPriority(c *fiber.Ctx) error {
	shopID := c.Params("id")

	var req UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.Shop{}).Where("id = ?", shopID).Update("priority", req.Priority)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update priority"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
	}

	return c.JSON(fiber.Map{"message": "Priority updated successfully"})
}

// Revenue sums collected amounts over paid bookings, optionally scoped to
// one shop with ?parlor_email=.
func Revenue(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Booking{}).Where("payment_status = ?", models.PaymentStatusPaid)
	if parlorEmail := c.Query("parlor_email"); parlorEmail != "" {
		query = query.Where("parlor_email = ?", parlorEmail)
	}

	var result struct {
		Total float64
		Count int
	}
	err := query.Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").Scan(&result).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute revenue"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	var recent []models.Booking
	database.DB.Where("payment_status = ?", models.PaymentStatusPaid).
		Order("updated_at desc").Limit(limit).Find(&recent)

	return c.JSON(fiber.Map{
		"total_revenue":   result.Total,
		"paid_bookings":   result.Count,
		"recent_payments": recent,
	})
}
