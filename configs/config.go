package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// CashfreeConfig holds the redirect-link gateway credentials. Loaded once at
// startup and injected into the client, never read from the environment
// inside request handling.
type CashfreeConfig struct {
	AppID      string
	SecretKey  string
	APIVersion string
	BaseURL    string
	NotifyURL  string
}

func LoadCashfreeConfig() CashfreeConfig {
	baseURL := "https://sandbox.cashfree.com/pg"
	if Config("CASHFREE_ENV") == "PRODUCTION" {
		baseURL = "https://api.cashfree.com/pg"
	}

	return CashfreeConfig{
		AppID:      Config("CASHFREE_APP_ID"),
		SecretKey:  Config("CASHFREE_SECRET_KEY"),
		APIVersion: "2022-01-01",
		BaseURL:    baseURL,
		NotifyURL:  Config("WEBHOOK_BASE_URL") + "/api/v1/payments/webhook",
	}
}

// RazorpayConfig holds the order/signature gateway credentials.
type RazorpayConfig struct {
	KeyID   string
	Secret  string
	BaseURL string
}

func LoadRazorpayConfig() RazorpayConfig {
	baseURL := Config("RAZORPAY_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	return RazorpayConfig{
		KeyID:   Config("RAZORPAY_KEY_ID"),
		Secret:  Config("RAZORPAY_SECRET"),
		BaseURL: baseURL,
	}
}
