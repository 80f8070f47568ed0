package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rithika04/salon_spot/models"
)

// DefaultSlotDuration is assumed for stored bookings that predate the
// duration column.
const DefaultSlotDuration = 60

const baseServiceDuration = 60
const perRelatedServiceDuration = 30

var errInvalidSlot = errors.New("invalid time slot format")

// BookingDuration returns the total appointment length in minutes: one hour
// for the main service plus half an hour per related service.
func BookingDuration(relatedServices []string) int {
	return baseServiceDuration + perRelatedServiceDuration*len(relatedServices)
}

// SlotStartMinutes parses the start of a "HH:MM-HH:MM" (or bare "HH:MM")
// slot string into minutes since midnight.
func SlotStartMinutes(slot string) (int, error) {
	start := slot
	if idx := strings.Index(slot, "-"); idx >= 0 {
		start = slot[:idx]
	}

	parts := strings.Split(strings.TrimSpace(start), ":")
	if len(parts) != 2 {
		return 0, errInvalidSlot
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, errInvalidSlot
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, errInvalidSlot
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, errInvalidSlot
	}

	return hours*60 + minutes, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// CheckAvailability reports whether a new appointment for the given employee
// on the given calendar day, starting at startMinutes and running for
// durationMinutes, fits without overlapping an existing booking.
//
// Bookings with a missing or unparsable date/slot are skipped rather than
// treated as conflicts; cancelled bookings no longer hold their slot. Two
// intervals do not conflict when one ends before (or exactly when) the other
// starts, so back-to-back appointments are allowed.
func CheckAvailability(bookings []models.Booking, employee string, date time.Time, startMinutes, durationMinutes int) bool {
	requestedEnd := startMinutes + durationMinutes

	for _, booking := range bookings {
		if booking.Date == nil || !sameUTCDay(*booking.Date, date) {
			continue
		}
		if booking.FavoriteEmployee != employee {
			continue
		}
		if booking.Confirmed == models.ConfirmedCancelled || booking.PaymentStatus == models.PaymentStatusCancelled {
			continue
		}

		bookedStart, err := SlotStartMinutes(booking.Time)
		if err != nil {
			continue
		}

		bookedDuration := booking.Duration
		if bookedDuration <= 0 {
			bookedDuration = DefaultSlotDuration
		}
		bookedEnd := bookedStart + bookedDuration

		if !(requestedEnd <= bookedStart || startMinutes >= bookedEnd) {
			return false
		}
	}

	return true
}
