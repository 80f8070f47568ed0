package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/middleware"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/services"
)

type ManpowerRequest struct {
	Name       string  `json:"name" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Salary     float64 `json:"salary" validate:"required,gt=0"`
}

func findShopByEmail(c *fiber.Ctx, email string) (*models.Shop, error) {
	var shop models.Shop
	if err := database.DB.Where("email = ?", email).First(&shop).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
	}
	return &shop, nil
}

func AddManpower(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req ManpowerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	entry := models.ManpowerEntry{
		ShopID:     shop.ID,
		Name:       req.Name,
		Phone:      req.Phone,
		Experience: req.Experience,
		Salary:     req.Salary,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add manpower"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func GetManpower(c *fiber.Ctx) error {
	email := c.Params("email")

	shop, err := findShopByEmail(c, email)
	if shop == nil {
		return err
	}

	var entries []models.ManpowerEntry
	database.DB.Where("shop_id = ?", shop.ID).Order("created_at asc").Find(&entries)

	return c.JSON(entries)
}

func UpdateManpower(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)
	entryID := c.Params("id")

	var req ManpowerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	result := database.DB.Model(&models.ManpowerEntry{}).
		Where("id = ? AND shop_id = ?", entryID, shop.ID).
		Updates(map[string]interface{}{
			"name":       req.Name,
			"phone":      req.Phone,
			"experience": req.Experience,
			"salary":     req.Salary,
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update manpower"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Manpower entry not found"})
	}

	return c.JSON(fiber.Map{"message": "Manpower updated successfully"})
}

func DeleteManpower(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)
	entryID := c.Params("id")

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	result := database.DB.Where("id = ? AND shop_id = ?", entryID, shop.ID).Delete(&models.ManpowerEntry{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete manpower"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Manpower entry not found"})
	}

	return c.JSON(fiber.Map{"message": "Manpower deleted successfully"})
}

type ServiceRequest struct {
	ServiceName string  `json:"service_name" validate:"required"`
	Style       string  `json:"style" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ShopImage   string  `json:"shop_image"`
}

func AddService(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	entry := models.ServiceEntry{
		ShopID:      shop.ID,
		ServiceName: req.ServiceName,
		Style:       req.Style,
		Price:       req.Price,
		ShopImage:   req.ShopImage,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add service"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func GetServices(c *fiber.Ctx) error {
	email := c.Params("email")

	shop, err := findShopByEmail(c, email)
	if shop == nil {
		return err
	}

	var entries []models.ServiceEntry
	database.DB.Where("shop_id = ?", shop.ID).Order("created_at asc").Find(&entries)

	return c.JSON(entries)
}

func UpdateService(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)
	entryID := c.Params("id")

	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	result := database.DB.Model(&models.ServiceEntry{}).
		Where("id = ? AND shop_id = ?", entryID, shop.ID).
		Updates(map[string]interface{}{
			"service_name": req.ServiceName,
			"style":        req.Style,
			"price":        req.Price,
			"shop_image":   req.ShopImage,
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	return c.JSON(fiber.Map{"message": "Service updated successfully"})
}

func DeleteService(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)
	entryID := c.Params("id")

	shop, err := findShopByEmail(c, shopEmail)
	if shop == nil {
		return err
	}

	result := database.DB.Where("id = ? AND shop_id = ?", entryID, shop.ID).Delete(&models.ServiceEntry{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete service"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	return c.JSON(fiber.Map{"message": "Service deleted successfully"})
}

// ListShops returns the public directory of approved shops, highest priority
// first.
func ListShops(c *fiber.Ctx) error {
	var shops []models.Shop
	database.DB.Preload("Services").
		Where("approved = ?", true).
		Order("priority desc, rating desc").
		Find(&shops)

	return c.JSON(shops)
}

func GetShop(c *fiber.Ctx) error {
	email := c.Params("email")

	var shop models.Shop
	err := database.DB.Preload("Manpower").Preload("Services").
		Where("email = ?", email).First(&shop).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
	}

	return c.JSON(shop)
}

// ServiceCards flattens every approved shop's services into the browsing
// feed shown on the landing page.
func ServiceCards(c *fiber.Ctx) error {
	type card struct {
		ParlorEmail string  `json:"parlor_email"`
		ParlorName  string  `json:"parlor_name"`
		Location    string  `json:"location"`
		Rating      float64 `json:"rating"`
		ServiceName string  `json:"service_name"`
		Style       string  `json:"style"`
		Price       float64 `json:"price"`
		ShopImage   string  `json:"shop_image"`
	}

	var cards []card
	err := database.DB.Model(&models.ServiceEntry{}).
		Select("shops.email as parlor_email, shops.shop_name as parlor_name, shops.location, shops.rating, service_entries.service_name, service_entries.style, service_entries.price, service_entries.shop_image").
		Joins("JOIN shops ON shops.id = service_entries.shop_id").
		Where("shops.approved = ?", true).
		Order("shops.priority desc").
		Scan(&cards).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load services"})
	}

	return c.JSON(cards)
}

func CheckEmployees(c *fiber.Ctx) error {
	email := c.Params("email")

	shop, err := findShopByEmail(c, email)
	if shop == nil {
		return err
	}

	var count int64
	database.DB.Model(&models.ManpowerEntry{}).Where("shop_id = ?", shop.ID).Count(&count)

	return c.JSON(fiber.Map{"has_employees": count > 0, "count": count})
}

type UpdateShopRatingRequest struct {
	ParlorEmail string `json:"parlor_email" validate:"required,email"`
}

// UpdateShopRating recomputes the derived rating aggregate for one shop.
func UpdateShopRating(c *fiber.Ctx) error {
	var req UpdateShopRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var shop models.Shop
	if err := database.DB.Where("email = ?", req.ParlorEmail).First(&shop).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salon not found"})
	}

	rating, err := services.RecomputeShopRating(req.ParlorEmail)
	if err != nil {
		log.Printf("Failed to recompute rating for %s: %v", req.ParlorEmail, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update rating"})
	}

	return c.JSON(fiber.Map{
		"message":        "Rating updated successfully",
		"parlor_email":   rating.ParlorEmail,
		"average_rating": rating.AverageRating,
		"count_people":   rating.CountPeople,
	})
}
