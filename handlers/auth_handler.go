package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/rithika04/salon_spot/configs"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/notifications"
	"github.com/rithika04/salon_spot/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const otpValidity = 5 * time.Minute

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Gender   string `json:"gender" validate:"required,oneof=Male Female Other"`
	DOB      string `json:"dob" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterShopRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Gender   string `json:"gender" validate:"required,oneof=Male Female Other"`
	DOB      string `json:"dob" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	ShopName string `json:"shop_name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Address  string `json:"address"`
	FromTime string `json:"from_time" validate:"required"`
	ToTime   string `json:"to_time" validate:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=User Shop"`
}

func parseDOB(raw string) (*time.Time, error) {
	dob, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	// Stored date-only, midnight UTC.
	dob = dob.UTC().Truncate(24 * time.Hour)
	return &dob, nil
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date of birth format"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var existing int64
	database.DB.Model(&models.User{}).Where("email = ? OR phone = ?", req.Email, req.Phone).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email or phone already registered"})
	}

	newUser := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DOB:         dob,
		Designation: "User",
		Password:    string(hashedPassword),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email or phone already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	go notifications.SendEmail(newUser.Name, newUser.Email, "Welcome!", "<h1>Welcome!</h1><p>Thank you for registering with Salon Spot.</p>")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"email":   newUser.Email,
	})
}

func RegisterShop(c *fiber.Ctx) error {
	var req RegisterShopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date of birth format"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var existing int64
	database.DB.Model(&models.Shop{}).Where("email = ? OR phone = ?", req.Email, req.Phone).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email or phone already registered"})
	}

	newShop := models.Shop{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DOB:         dob,
		Designation: "Shop",
		Password:    string(hashedPassword),
		ShopName:    req.ShopName,
		Location:    req.Location,
		Address:     req.Address,
		FromTime:    req.FromTime,
		ToTime:      req.ToTime,
	}
	if err := database.DB.Create(&newShop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email or phone already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register shop"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Shop registered successfully. Awaiting admin approval.",
		"email":   newShop.Email,
	})
}

func signToken(email, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var email, hashed, role string

	if req.Role == "User" {
		var user models.User
		err := database.DB.Where("email = ? OR phone = ?", req.Identifier, req.Identifier).First(&user).Error
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
		}
		email, hashed = user.Email, user.Password
		role = "User"
		if user.Designation == "Admin" {
			role = "Admin"
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}

		database.DB.Model(&user).Update("login", true)
	} else {
		var shop models.Shop
		err := database.DB.Where("email = ? OR phone = ?", req.Identifier, req.Identifier).First(&shop).Error
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Shop not found"})
		}
		if !shop.Approved {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Your account is pending approval. Please wait for approval."})
		}
		email, hashed, role = shop.Email, shop.Password, "Shop"

		if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
	}

	t, err := signToken(email, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"message": req.Role + " logged in successfully",
		"email":   email,
		"role":    role,
		"token":   t,
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=User Shop"`
}

func ForgotPasswordSendOTP(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	otp := utils.GenerateOTP()
	now := time.Now()
	var name string

	if req.Role == "User" {
		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		name = user.Name
		if err := database.DB.Model(&user).Updates(map[string]interface{}{"otp": otp, "otp_timestamp": now}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store OTP"})
		}
	} else {
		var shop models.Shop
		if err := database.DB.Where("email = ?", req.Email).First(&shop).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
		}
		name = shop.Name
		if err := database.DB.Model(&shop).Updates(map[string]interface{}{"otp": otp, "otp_timestamp": now}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store OTP"})
		}
	}

	go notifications.SendEmail(name, req.Email, "Your Password Reset OTP",
		"<h1>Password Reset</h1><p>Your one-time password is <b>"+utils.FormatOTP(otp)+"</b>. It expires in 5 minutes.</p>")

	return c.JSON(fiber.Map{"message": "OTP sent to registered email"})
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=User Shop"`
	OTP   int    `json:"otp" validate:"required"`
}

func otpMatches(stored *int, ts *time.Time, submitted int) bool {
	if stored == nil || ts == nil {
		return false
	}
	if time.Since(*ts) > otpValidity {
		return false
	}
	return *stored == submitted
}

func VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var ok bool
	if req.Role == "User" {
		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		ok = otpMatches(user.OTP, user.OTPTimestamp, req.OTP)
	} else {
		var shop models.Shop
		if err := database.DB.Where("email = ?", req.Email).First(&shop).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
		}
		ok = otpMatches(shop.OTP, shop.OTPTimestamp, req.OTP)
	}

	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired OTP"})
	}

	return c.JSON(fiber.Map{"message": "OTP verified successfully"})
}

type UpdatePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=User Shop"`
	OTP      int    `json:"otp" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func UpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	reset := map[string]interface{}{"password": string(hashedPassword), "otp": nil, "otp_timestamp": nil}

	if req.Role == "User" {
		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		if !otpMatches(user.OTP, user.OTPTimestamp, req.OTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired OTP"})
		}
		if err := database.DB.Model(&user).Updates(reset).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
		}
	} else {
		var shop models.Shop
		if err := database.DB.Where("email = ?", req.Email).First(&shop).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop not found"})
		}
		if !otpMatches(shop.OTP, shop.OTPTimestamp, req.OTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired OTP"})
		}
		if err := database.DB.Model(&shop).Updates(reset).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
		}
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
