package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/rithika04/salon_spot/configs"
)

// RazorpayClient talks to the order/signature style gateway: the client SDK
// completes the payment in the browser and hands back an order id, payment id
// and an HMAC signature this server verifies.
type RazorpayClient struct {
	cfg    config.RazorpayConfig
	client *http.Client
}

var Razorpay *RazorpayClient

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type RazorpayPayment struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	ErrorDescription string `json:"error_description"`
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder registers a gateway order for the given amount in rupees.
// Razorpay expects the amount in paise.
func (r *RazorpayClient) CreateOrder(amount float64, receipt string, notes map[string]string) (*RazorpayOrder, error) {
	payload := razorpayOrderRequest{
		Amount:   int64(amount*100 + 0.5),
		Currency: "INR",
		Receipt:  receipt,
		Notes:    notes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequest("POST", r.cfg.BaseURL+"/v1/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}

	req.SetBasicAuth(r.cfg.KeyID, r.cfg.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Razorpay API error: %s", string(respBody))
		return nil, fmt.Errorf("razorpay returned non-200 status: %d", resp.StatusCode)
	}

	var order RazorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %v", err)
	}

	return &order, nil
}

// FetchPayment pulls the final state of a payment, including the method used
// and any failure description.
func (r *RazorpayClient) FetchPayment(paymentID string) (*RazorpayPayment, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/payments/%s", r.cfg.BaseURL, paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %v", err)
	}

	req.SetBasicAuth(r.cfg.KeyID, r.cfg.Secret)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay payment fetch failed: %s", string(respBody))
	}

	var payment RazorpayPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %v", err)
	}

	return &payment, nil
}

// VerifyPaymentSignature recomputes the hex HMAC-SHA256 over
// "{orderID}|{paymentID}" and compares it to the client-provided signature.
func (r *RazorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(r.cfg.Secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	computed := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(signature))
}
