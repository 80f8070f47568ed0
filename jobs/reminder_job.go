package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
	"github.com/rithika04/salon_spot/notifications"
	"github.com/rithika04/salon_spot/services"
)

// SendBookingReminders mails customers whose appointment starts roughly an
// hour from now. The window matches the cron cadence so each booking is
// picked up once.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var todaysBookings []models.Booking
	err := database.DB.Preload("User").
		Where("date = ? AND payment_status = ?", today, models.PaymentStatusPaid).
		Find(&todaysBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	nowMinutes := now.Hour()*60 + now.Minute()

	for _, booking := range todaysBookings {
		startMinutes, err := services.SlotStartMinutes(booking.Time)
		if err != nil {
			continue
		}
		lead := startMinutes - nowMinutes
		if lead < 60 || lead >= 65 {
			continue
		}

		emailBody := fmt.Sprintf(
			"<h1>Appointment Reminder</h1><p>Hi %s,</p><p>This is a reminder that your %s appointment at %s starts at %s today.</p>",
			booking.User.Name, booking.Service, booking.ParlorName, booking.Time,
		)
		go notifications.SendEmail(booking.User.Name, booking.User.Email, "Reminder: Your Appointment Starts in 1 Hour!", emailBody)
	}
}
