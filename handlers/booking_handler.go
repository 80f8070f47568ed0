package handlers

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/middleware"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/notifications"
	"github.com/rithika04/salon_spot/payments"
	"github.com/rithika04/salon_spot/services"
	"github.com/rithika04/salon_spot/websocket"
	"gorm.io/gorm"
)

var errSlotTaken = errors.New("selected time slot is not available for the required duration")

const cancellationFeeRate = 0.10

type CreateBookingRequest struct {
	ParlorEmail      string   `json:"parlor_email" validate:"required,email"`
	ParlorName       string   `json:"parlor_name" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Date             string   `json:"date" validate:"required"`
	Time             string   `json:"time" validate:"required"`
	Service          string   `json:"service" validate:"required"`
	FavoriteEmployee string   `json:"favorite_employee" validate:"required"`
	RelatedServices  []string `json:"related_services,omitempty"`
	Amount           float64  `json:"amount" validate:"required,gt=0"`
	TotalAmount      float64  `json:"total_amount" validate:"required,gt=0"`
}

func parseBookingDate(raw string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date.UTC(), nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return date.UTC(), nil
}

// CreateBooking reserves a slot and opens a gateway order for it. The slot
// check and the booking insert run inside one transaction holding the user
// row lock, so two concurrent requests cannot both pass the overlap check.
// The gateway call happens after commit: a gateway failure leaves the
// PENDING booking in place with no order id so order creation can be retried.
func CreateBooking(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	startMinutes, err := services.SlotStartMinutes(req.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid time slot format"})
	}

	duration := services.BookingDuration(req.RelatedServices)

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.LockForUpdate(tx).
			Where("email = ?", userEmail).First(&user).Error; err != nil {
			return err
		}

		var existing []models.Booking
		if err := tx.Where("user_id = ?", user.ID).Find(&existing).Error; err != nil {
			return err
		}

		if !services.CheckAvailability(existing, req.FavoriteEmployee, date, startMinutes, duration) {
			return errSlotTaken
		}

		booking = models.Booking{
			UserID:           user.ID,
			ParlorEmail:      req.ParlorEmail,
			ParlorName:       req.ParlorName,
			Name:             req.Name,
			Date:             &date,
			Time:             req.Time,
			Duration:         duration,
			Service:          req.Service,
			FavoriteEmployee: req.FavoriteEmployee,
			RelatedServices:  req.RelatedServices,
			Amount:           req.Amount,
			TotalAmount:      req.TotalAmount,
			PaymentStatus:    models.PaymentStatusPending,
			Confirmed:        models.ConfirmedPending,
			RefundStatus:     models.RefundStatusNone,
		}
		return tx.Create(&booking).Error
	})

	if errors.Is(err, errSlotTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errSlotTaken.Error()})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	order, err := payments.Razorpay.CreateOrder(req.Amount, "booking_"+booking.ID.String(), map[string]string{
		"booking_id": booking.ID.String(),
		"user_email": userEmail,
	})
	if err != nil {
		log.Printf("🔥 Razorpay order creation failed for booking %s: %v", booking.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":      "Failed to create payment order, please retry",
			"booking_id": booking.ID,
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking).Update("order_id", order.ID).Error; err != nil {
			return err
		}
		payment := models.Payment{
			BookingID:     booking.ID,
			OrderID:       order.ID,
			Amount:        req.Amount,
			PaymentStatus: models.PaymentStatusPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment order"})
	}
	booking.OrderID = &order.ID

	go websocket.NotifyShop(req.ParlorEmail, websocket.Event{
		Type:    "booking_created",
		Payload: fiber.Map{"booking_id": booking.ID, "service": booking.Service, "date": req.Date, "time": req.Time},
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Booking created successfully",
		"booking":  booking,
		"order_id": order.ID,
	})
}

type CancelBookingRequest struct {
	UPIID string `json:"upi_id,omitempty"`
}

// CancelBooking cancels a future booking. A fully collected payment
// (amount == total_amount) enters the refund workflow at 90% of the amount;
// partially collected bookings get no refund path.
func CancelBooking(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)
	orderID := c.Params("orderId")

	var req CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}

	var user models.User
	if err := database.DB.Where("email = ?", userEmail).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var booking models.Booking
	if err := database.DB.Where("user_id = ? AND order_id = ?", user.ID, orderID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Confirmed == models.ConfirmedCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking already cancelled"})
	}
	if booking.Date != nil && !booking.Date.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot cancel past bookings"})
	}

	refundAmount := 0.0
	isFullPayment := booking.Amount == booking.TotalAmount

	if isFullPayment {
		if req.UPIID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "UPI ID is required for full payment refunds"})
		}
		refundAmount = math.Round(booking.Amount*(1-cancellationFeeRate)*100) / 100
		booking.UPIID = &req.UPIID
		booking.RefundStatus = models.RefundStatusPending
	} else {
		booking.RefundStatus = models.RefundStatusNone
	}

	booking.PaymentStatus = models.PaymentStatusCancelled
	booking.Confirmed = models.ConfirmedCancelled
	booking.RefundedAmount = refundAmount

	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	go notifications.SendEmail(user.Name, user.Email, "Booking Cancelled",
		"<h1>Booking Cancelled</h1><p>Your booking at "+booking.ParlorName+" has been cancelled.</p>")

	return c.JSON(fiber.Map{
		"message":       "Booking cancelled successfully",
		"refund_amount": refundAmount,
		"upi_id":        booking.UPIID,
	})
}

type RefundActionRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Action  string `json:"action" validate:"required,oneof=accept reject"`
}

// RefundAction lets the owning shop approve or reject a pending refund.
// Approval clears the booking date so the slot becomes reusable; the actual
// funds movement happens on an external payment rail.
func RefundAction(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req RefundActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Where("order_id = ?", req.OrderID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.ParlorEmail != shopEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized: You do not own this booking"})
	}

	if booking.PaymentStatus != models.PaymentStatusCancelled || booking.RefundedAmount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No refund to process"})
	}
	if booking.RefundStatus != models.RefundStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Refund already processed"})
	}

	if req.Action == "accept" {
		booking.RefundStatus = models.RefundStatusApproved
		booking.Date = nil
	} else {
		booking.RefundStatus = models.RefundStatusRejected
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process refund action"})
	}

	return c.JSON(fiber.Map{"message": "Refund " + req.Action + "ed successfully"})
}

type RateBookingRequest struct {
	OrderID    string `json:"order_id" validate:"required"`
	UserRating int    `json:"user_rating" validate:"required,min=1,max=5"`
	UserReview string `json:"user_review"`
}

func RateBooking(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var req RateBookingRequest
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

	var booking models.Booking
	if err := database.DB.Where("user_id = ? AND order_id = ?", user.ID, req.OrderID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	booking.UserRating = &req.UserRating
	if req.UserReview != "" {
		booking.UserReview = &req.UserReview
	}
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save rating"})
	}

	// Ratings and the derived shop aggregate are eventually consistent.
	go func() {
		if _, err := services.RecomputeShopRating(booking.ParlorEmail); err != nil {
			log.Printf("Failed to recompute rating for %s: %v", booking.ParlorEmail, err)
		}
	}()

	return c.JSON(fiber.Map{"message": "Review updated successfully"})
}

type ComplaintRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	Complaint string `json:"complaint" validate:"required,min=1"`
}

func SubmitUserComplaint(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var req ComplaintRequest
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

	result := database.DB.Model(&models.Booking{}).
		Where("user_id = ? AND order_id = ?", user.ID, req.OrderID).
		Update("user_complaint", req.Complaint)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit complaint"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(fiber.Map{"message": "Complaint submitted successfully"})
}

func SubmitShopComplaint(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.Booking{}).
		Where("parlor_email = ? AND order_id = ?", shopEmail, req.OrderID).
		Update("sp_complaint", req.Complaint)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit complaint"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(fiber.Map{"message": "Complaint submitted successfully"})
}

type ConfirmBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// ConfirmBooking is the shop acknowledging an upcoming appointment.
func ConfirmBooking(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req ConfirmBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND parlor_email = ? AND confirmed = ?", req.BookingID, shopEmail, models.ConfirmedPending).
		Update("confirmed", models.ConfirmedConfirmed)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update confirmation"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(fiber.Map{"message": "Booking confirmation updated successfully"})
}

type CollectPaymentRequest struct {
	BookingID     string  `json:"booking_id" validate:"required,uuid"`
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0"`
}

// CollectPayment records an amount collected at the counter for a partially
// paid booking and flips it to PAID once collection starts.
func CollectPayment(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var req CollectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Where("id = ? AND parlor_email = ?", req.BookingID, shopEmail).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	err := database.DB.Model(&booking).Updates(map[string]interface{}{
		"amount":         gorm.Expr("amount + ?", req.PaymentAmount),
		"payment_status": models.PaymentStatusPaid,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment updated successfully"})
}

func GetMyBookings(c *fiber.Ctx) error {
	userEmail := middleware.ClaimEmail(c)

	var user models.User
	if err := database.DB.Where("email = ?", userEmail).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var bookings []models.Booking
	database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&bookings)

	return c.JSON(bookings)
}

func GetShopBookings(c *fiber.Ctx) error {
	shopEmail := middleware.ClaimEmail(c)

	var bookings []models.Booking
	database.DB.Where("parlor_email = ?", shopEmail).Order("created_at desc").Find(&bookings)

	return c.JSON(bookings)
}
