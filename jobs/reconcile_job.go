package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
)

// stalePaymentAge is how long an order may sit in PENDING before we assume
// the customer abandoned checkout and the gateway will never call back.
const stalePaymentAge = 24 * time.Hour

// ExpireStalePayments marks abandoned PENDING payments as FAILED so their
// slots stop counting against availability. Each payment and its booking are
// updated in one transaction, mirroring the webhook path.
func ExpireStalePayments() {
	log.Println("Running job: ExpireStalePayments...")

	cutoff := time.Now().UTC().Add(-stalePaymentAge)

	var stale []models.Payment
	err := database.DB.
		Where("payment_status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error finding stale payments: %v", err)
		return
	}

	expired := 0
	for _, payment := range stale {
		payment := payment
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Payment{}).
				Where("id = ? AND payment_status = ?", payment.ID, models.PaymentStatusPending).
				Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
				return err
			}
			reason := "Payment expired before completion"
			return tx.Model(&models.Booking{}).
				Where("id = ? AND payment_status = ?", payment.BookingID, models.PaymentStatusPending).
				Updates(map[string]interface{}{
					"payment_status": models.PaymentStatusFailed,
					"failure_reason": reason,
				}).Error
		})
		if err != nil {
			log.Printf("Error expiring payment %s: %v", payment.OrderID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Printf("Expired %d stale pending payments", expired)
	}
}
