package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Booking{}, &models.Payment{}))
	database.DB = db
}

func seedOrder(t *testing.T, orderID, status string, createdAt time.Time) models.Booking {
	t.Helper()

	user := models.User{Name: "Alice", Email: orderID + "@example.com", Phone: orderID, Password: "x"}
	require.NoError(t, database.DB.Create(&user).Error)

	booking := models.Booking{
		UserID:        user.ID,
		ParlorEmail:   "glam@example.com",
		ParlorName:    "Glam Studio",
		Time:          "10:00",
		Service:       "Haircut",
		Amount:        500,
		TotalAmount:   500,
		PaymentStatus: status,
		OrderID:       &orderID,
	}
	require.NoError(t, database.DB.Create(&booking).Error)

	payment := models.Payment{
		BookingID:     booking.ID,
		OrderID:       orderID,
		Amount:        500,
		PaymentStatus: status,
		CreatedAt:     createdAt,
	}
	require.NoError(t, database.DB.Create(&payment).Error)
	return booking
}

func TestExpireStalePayments(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	stale := seedOrder(t, "ORDER_OLD", models.PaymentStatusPending, now.Add(-25*time.Hour))
	fresh := seedOrder(t, "ORDER_NEW", models.PaymentStatusPending, now.Add(-1*time.Hour))
	paid := seedOrder(t, "ORDER_PAID", models.PaymentStatusPaid, now.Add(-48*time.Hour))

	ExpireStalePayments()

	var payment models.Payment
	require.NoError(t, database.DB.Where("order_id = ?", "ORDER_OLD").First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.PaymentStatus)

	var booking models.Booking
	require.NoError(t, database.DB.First(&booking, "id = ?", stale.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, booking.PaymentStatus)
	require.NotNil(t, booking.FailureReason)
	assert.Equal(t, "Payment expired before completion", *booking.FailureReason)

	// recent and settled orders are untouched
	payment = models.Payment{}
	require.NoError(t, database.DB.Where("order_id = ?", "ORDER_NEW").First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.PaymentStatus)
	booking = models.Booking{}
	require.NoError(t, database.DB.First(&booking, "id = ?", fresh.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)

	payment = models.Payment{}
	require.NoError(t, database.DB.Where("order_id = ?", "ORDER_PAID").First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPaid, payment.PaymentStatus)
	booking = models.Booking{}
	require.NoError(t, database.DB.First(&booking, "id = ?", paid.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
}

func TestExpireStalePaymentsIdempotent(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	seedOrder(t, "ORDER_OLD", models.PaymentStatusPending, now.Add(-25*time.Hour))

	ExpireStalePayments()
	ExpireStalePayments()

	var count int64
	database.DB.Model(&models.Payment{}).Where("payment_status = ?", models.PaymentStatusFailed).Count(&count)
	assert.Equal(t, int64(1), count)
}
