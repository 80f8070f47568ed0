package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
)

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Post("/auth/register", RegisterUser)
	app.Post("/auth/register-shop", RegisterShop)
	app.Post("/auth/login", Login)
	app.Post("/auth/verify-otp", VerifyOTP)
	app.Post("/auth/update-password", UpdatePassword)
	return app
}

func registerPayload(email, phone string) map[string]string {
	return map[string]string{
		"name":     "Alice",
		"email":    email,
		"phone":    phone,
		"gender":   "Female",
		"dob":      "1999-04-12",
		"password": "secret123",
	}
}

func TestRegisterUser(t *testing.T) {
	setupTestDB(t)
	app := newAuthApp()

	resp, body := doJSON(t, app, "POST", "/auth/register", registerPayload("alice@example.com", "9000000001"), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["email"])

	var user models.User
	require.NoError(t, database.DB.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, "User", user.Designation)
	assert.NotEqual(t, "secret123", user.Password)

	// duplicate email is rejected
	resp, _ = doJSON(t, app, "POST", "/auth/register", registerPayload("alice@example.com", "9000000002"), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// duplicate phone is rejected
	resp, _ = doJSON(t, app, "POST", "/auth/register", registerPayload("alice2@example.com", "9000000001"), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// short password
	bad := registerPayload("bob@example.com", "9000000003")
	bad["password"] = "abc"
	resp, _ = doJSON(t, app, "POST", "/auth/register", bad, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginUser(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	app := newAuthApp()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "9000000001",
		Password: string(hashed),
	}
	require.NoError(t, database.DB.Create(&user).Error)

	resp, body := doJSON(t, app, "POST", "/auth/login",
		map[string]string{"identifier": "alice@example.com", "password": "secret123", "role": "User"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User", body["role"])
	assert.NotEmpty(t, body["token"])

	// phone works as identifier too
	resp, _ = doJSON(t, app, "POST", "/auth/login",
		map[string]string{"identifier": "9000000001", "password": "secret123", "role": "User"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.User
	require.NoError(t, database.DB.Where("email = ?", "alice@example.com").First(&saved).Error)
	assert.True(t, saved.Login)

	resp, _ = doJSON(t, app, "POST", "/auth/login",
		map[string]string{"identifier": "alice@example.com", "password": "wrong", "role": "User"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginShopRequiresApproval(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	app := newAuthApp()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	shop := models.Shop{
		Name:        "Priya",
		Email:       "glam@example.com",
		Phone:       "9876543210",
		Designation: "Shop",
		Password:    string(hashed),
		ShopName:    "Glam Studio",
		Location:    "Chennai",
	}
	require.NoError(t, database.DB.Create(&shop).Error)

	resp, body := doJSON(t, app, "POST", "/auth/login",
		map[string]string{"identifier": "glam@example.com", "password": "secret123", "role": "Shop"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["error"], "pending approval")

	require.NoError(t, database.DB.Model(&shop).Update("approved", true).Error)

	resp, body = doJSON(t, app, "POST", "/auth/login",
		map[string]string{"identifier": "glam@example.com", "password": "secret123", "role": "Shop"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Shop", body["role"])
}

func TestOTPResetFlow(t *testing.T) {
	setupTestDB(t)
	app := newAuthApp()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "9000000001",
		Password: string(hashed),
	}
	require.NoError(t, database.DB.Create(&user).Error)

	otp := 482109
	now := time.Now()
	require.NoError(t, database.DB.Model(&user).
		Updates(map[string]interface{}{"otp": otp, "otp_timestamp": now}).Error)

	resp, _ := doJSON(t, app, "POST", "/auth/verify-otp",
		map[string]interface{}{"email": "alice@example.com", "role": "User", "otp": otp}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/auth/verify-otp",
		map[string]interface{}{"email": "alice@example.com", "role": "User", "otp": 111111}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/auth/update-password",
		map[string]interface{}{"email": "alice@example.com", "role": "User", "otp": otp, "password": "newsecret"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.User
	require.NoError(t, database.DB.Where("email = ?", "alice@example.com").First(&saved).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("newsecret")))
	assert.Nil(t, saved.OTP)
	assert.Nil(t, saved.OTPTimestamp)

	// a consumed OTP cannot be replayed
	resp, _ = doJSON(t, app, "POST", "/auth/update-password",
		map[string]interface{}{"email": "alice@example.com", "role": "User", "otp": otp, "password": "another1"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOTPExpires(t *testing.T) {
	setupTestDB(t)
	app := newAuthApp()

	user := models.User{Name: "Alice", Email: "alice@example.com", Phone: "9000000001", Password: "x"}
	require.NoError(t, database.DB.Create(&user).Error)

	stale := time.Now().Add(-10 * time.Minute)
	require.NoError(t, database.DB.Model(&user).
		Updates(map[string]interface{}{"otp": 482109, "otp_timestamp": stale}).Error)

	resp, body := doJSON(t, app, "POST", "/auth/verify-otp",
		map[string]interface{}{"email": "alice@example.com", "role": "User", "otp": 482109}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or expired OTP", body["error"])
}
