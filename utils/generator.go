package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderID builds the correlation key shared between a booking, its
// Payment row and the gateway order.
func GenerateOrderID() string {
	return fmt.Sprintf("ORDER_%d_%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func GenerateOTP() int {
	return 100000 + rand.Intn(900000)
}

func FormatOTP(otp int) string {
	return fmt.Sprintf("%06d", otp)
}

func GenerateBookingPin() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}
