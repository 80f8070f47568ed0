package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	config "github.com/rithika04/salon_spot/configs"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/payments"
)

const testGatewaySecret = "s3cr3t"

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.ManpowerEntry{},
		&models.ServiceEntry{},
		&models.Booking{},
		&models.Payment{},
		&models.Enquiry{},
	))

	database.DB = db
}

// authAs injects a verified token the way the JWT middleware would after
// validating a real bearer token.
func authAs(email, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": email,
			"role":  role,
		})
		c.Locals("user", token)
		return c.Next()
	}
}

var orderCounter int64

// startRazorpayStub serves the order and payment endpoints the handlers call
// out to. paymentStatus controls what FetchPayment reports.
func startRazorpayStub(t *testing.T, paymentStatus string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/v1/orders":
			id := fmt.Sprintf("order_T%d", atomic.AddInt64(&orderCounter, 1))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": id, "currency": "INR", "status": "created",
			})
		case r.Method == "GET":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "pay_T1", "status": paymentStatus, "method": "upi",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	payments.Razorpay = payments.NewRazorpayClient(config.RazorpayConfig{
		KeyID:   "rzp_test_key",
		Secret:  testGatewaySecret,
		BaseURL: server.URL,
	})
	return server
}

func startCashfreeStub(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"order_id":     "stub",
			"payment_link": "https://payments.example.com/order/stub",
		})
	}))
	t.Cleanup(server.Close)

	payments.Cashfree = payments.NewCashfreeClient(config.CashfreeConfig{
		AppID:      "cf_app",
		SecretKey:  testGatewaySecret,
		APIVersion: "2022-01-01",
		BaseURL:    server.URL,
		NotifyURL:  "https://example.com/api/v1/payments/webhook",
	})
	return server
}

func signCashfreeBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func seedUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Alice",
		Email:    email,
		Phone:    fmt.Sprintf("9%09d", atomic.AddInt64(&orderCounter, 1)),
		Password: "x",
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedShop(t *testing.T, email string) models.Shop {
	t.Helper()
	shop := models.Shop{
		Approved:    true,
		Name:        "Priya",
		Email:       email,
		Phone:       fmt.Sprintf("8%09d", atomic.AddInt64(&orderCounter, 1)),
		Designation: "Shop",
		Password:    "x",
		ShopName:    "Glam Studio",
		Location:    "Chennai",
	}
	require.NoError(t, database.DB.Create(&shop).Error)
	return shop
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case []byte:
			reader = bytes.NewReader(b)
		default:
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func doGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeList(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
