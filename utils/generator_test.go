package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()
	assert.True(t, strings.HasPrefix(id, "ORDER_"))

	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateOTP()
		assert.GreaterOrEqual(t, otp, 100000)
		assert.LessOrEqual(t, otp, 999999)
	}
}

func TestFormatOTP(t *testing.T) {
	assert.Equal(t, "123456", FormatOTP(123456))
	assert.Equal(t, "100001", FormatOTP(100001))
}

func TestGenerateBookingPin(t *testing.T) {
	for i := 0; i < 100; i++ {
		pin := GenerateBookingPin()
		assert.Len(t, pin, 4)
	}
}
