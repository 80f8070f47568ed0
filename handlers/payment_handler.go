package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/notifications"
	"github.com/rithika04/salon_spot/payments"
	"github.com/rithika04/salon_spot/utils"
	"gorm.io/gorm"
)

var errBookingMissing = errors.New("booking record not found")

type CreateOrderRequest struct {
	BookingID     string  `json:"booking_id" validate:"required,uuid"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,len=10,numeric"`
	ReturnURL     string  `json:"return_url" validate:"required,url"`
}

// CreateCashfreeOrder opens a redirect-link gateway order for an existing
// booking. The Payment row is written before the gateway call so a later
// webhook always has a record to reconcile against.
func CreateCashfreeOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Where("id = ?", req.BookingID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	orderID := utils.GenerateOrderID()

	customerName := req.CustomerName
	if customerName == "" {
		customerName = "Guest"
	}

	payment := models.Payment{
		BookingID:     booking.ID,
		OrderID:       orderID,
		Amount:        req.Amount,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment record"})
	}

	order, err := payments.Cashfree.CreateOrder(orderID, req.Amount,
		"cust_"+req.BookingID, customerName, req.CustomerEmail, req.CustomerPhone, req.ReturnURL)
	if err != nil {
		log.Printf("🔥 Cashfree order creation failed for booking %s: %v", req.BookingID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to create order"})
	}

	err = database.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Updates(map[string]interface{}{"order_id": orderID, "payment_status": models.PaymentStatusPending}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	return c.JSON(fiber.Map{
		"message":      "Order created successfully",
		"order_id":     orderID,
		"payment_link": order.PaymentLink,
	})
}

type cashfreeWebhookPayload struct {
	Data struct {
		Order struct {
			OrderID       string `json:"order_id"`
			OrderStatus   string `json:"order_status"`
			CfOrderID     string `json:"cf_order_id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"order"`
	} `json:"data"`
}

func mapCashfreeStatus(orderStatus, paymentStatus string) string {
	switch {
	case orderStatus == "PAID" && paymentStatus == "SUCCESS":
		return models.PaymentStatusPaid
	case orderStatus == "TERMINATED" || paymentStatus == "FAILED":
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}

// HandleCashfreeWebhook reconciles a gateway-pushed outcome onto the Payment
// row and its booking. The two updates share one transaction: the stores
// never disagree about an order's payment state. Redelivery of an outcome
// already applied is acknowledged without touching anything.
func HandleCashfreeWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get("x-webhook-signature")

	var payload cashfreeWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	order := payload.Data.Order
	if order.OrderID == "" || order.CfOrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing order_id or cf_order_id"})
	}

	if !payments.Cashfree.VerifyWebhookSignature(rawBody, signature) {
		log.Printf("Invalid webhook signature for order %s", order.OrderID)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid webhook signature"})
	}

	internalStatus := mapCashfreeStatus(order.OrderStatus, order.PaymentStatus)

	var payment models.Payment
	if err := database.DB.Where("order_id = ?", order.OrderID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	// Gateways retry delivery; a replay of the terminal status is a no-op.
	if payment.PaymentStatus == internalStatus && internalStatus != models.PaymentStatusPending {
		return c.JSON(fiber.Map{"message": "Webhook already processed"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Payment{}).Where("order_id = ?", order.OrderID).
			Updates(map[string]interface{}{
				"payment_status": internalStatus,
				"transaction_id": order.CfOrderID,
			}).Error
		if err != nil {
			return err
		}

		result := tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"payment_status": internalStatus,
				"transaction_id": order.CfOrderID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errBookingMissing
		}
		return nil
	})

	if errors.Is(err, errBookingMissing) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking record not found"})
	}
	if err != nil {
		log.Printf("🔥 CRITICAL: Error processing webhook for order %s: %v", order.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook processing failed"})
	}

	if internalStatus == models.PaymentStatusPaid {
		go notifyBookingPaid(payment.BookingID.String())
	}

	return c.JSON(fiber.Map{"message": "Webhook processed successfully"})
}

func notifyBookingPaid(bookingID string) {
	var booking models.Booking
	if err := database.DB.Preload("User").Where("id = ?", bookingID).First(&booking).Error; err != nil {
		return
	}
	notifications.SendEmail(booking.User.Name, booking.User.Email, "Your Booking is Confirmed!",
		"<h1>Booking Confirmed</h1><p>Your payment was successful and your appointment at "+booking.ParlorName+" is confirmed.</p>")
}

type VerifyPaymentRequest struct {
	Pin               string `json:"pin"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature"`
	FailureReason     string `json:"failure_reason"`
}

// VerifyClientPayment reconciles a client-confirmed payment. A missing
// signature means the customer never completed payment, which is a payment
// failure rather than an auth error; a wrong signature marks the payment
// failed with the reason recorded.
func VerifyClientPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentStatus := models.PaymentStatusPaid
	var failureReason string
	paymentMethod := "UNKNOWN"

	if req.RazorpaySignature != "" {
		if !payments.Razorpay.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			paymentStatus = models.PaymentStatusFailed
			failureReason = "Invalid signature"
		}
	} else {
		paymentStatus = models.PaymentStatusFailed
		failureReason = req.FailureReason
		if failureReason == "" {
			failureReason = "Payment failed (no signature provided)"
		}
	}

	if paymentStatus == models.PaymentStatusPaid {
		payment, err := payments.Razorpay.FetchPayment(req.RazorpayPaymentID)
		if err != nil {
			paymentStatus = models.PaymentStatusFailed
			failureReason = "Failed to fetch payment details"
		} else {
			paymentMethod = payment.Method
			if payment.Status != "captured" {
				paymentStatus = models.PaymentStatusFailed
				failureReason = payment.ErrorDescription
				if failureReason == "" {
					failureReason = "Payment failed"
				}
			}
		}
	}

	// The check-in pin shown at the counter; generated here when the client
	// did not supply one.
	pin := req.Pin
	if pin == "" {
		pin = utils.GenerateBookingPin()
	}

	bookingFields := map[string]interface{}{
		"pin":            pin,
		"payment_status": paymentStatus,
		"transaction_id": req.RazorpayPaymentID,
		"payment_mode":   paymentMethod,
	}
	if failureReason != "" {
		bookingFields["failure_reason"] = failureReason
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Payment{}).Where("order_id = ?", req.RazorpayOrderID).
			Updates(map[string]interface{}{
				"payment_status": paymentStatus,
				"transaction_id": req.RazorpayPaymentID,
			}).Error
		if err != nil {
			return err
		}

		result := tx.Model(&models.Booking{}).Where("order_id = ?", req.RazorpayOrderID).
			Updates(bookingFields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errBookingMissing
		}
		return nil
	})

	if errors.Is(err, errBookingMissing) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found for this order"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment result"})
	}

	message := "Payment verified successfully"
	if paymentStatus != models.PaymentStatusPaid {
		message = "Payment failed"
	}

	return c.JSON(fiber.Map{
		"message":        message,
		"order_id":       req.RazorpayOrderID,
		"payment_id":     req.RazorpayPaymentID,
		"payment_status": paymentStatus,
		"payment_method": paymentMethod,
		"failure_reason": failureReason,
	})
}

// GetPaymentStatus returns the reconciled snapshot for one order id.
func GetPaymentStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order ID is required"})
	}

	var booking models.Booking
	if err := database.DB.Where("order_id = ?", orderID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"payment_status":    booking.PaymentStatus,
			"transaction_id":    booking.TransactionID,
			"order_id":          booking.OrderID,
			"amount":            booking.Amount,
			"total_amount":      booking.TotalAmount,
			"payment_mode":      booking.PaymentMode,
			"created_at":        booking.CreatedAt,
			"parlor_name":       booking.ParlorName,
			"service":           booking.Service,
			"date":              booking.Date,
			"time":              booking.Time,
			"name":              booking.Name,
			"favorite_employee": booking.FavoriteEmployee,
			"related_services":  booking.RelatedServices,
			"failure_reason":    booking.FailureReason,
			"currency":          "INR",
		},
	})
}
