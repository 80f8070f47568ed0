package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/rithika04/salon_spot/configs"
)

// CashfreeClient talks to the redirect-link style gateway: an order is
// created up front, the customer pays on a hosted page and the gateway
// reports the outcome through a signed webhook.
type CashfreeClient struct {
	cfg    config.CashfreeConfig
	client *http.Client
}

var Cashfree *CashfreeClient

func NewCashfreeClient(cfg config.CashfreeConfig) *CashfreeClient {
	return &CashfreeClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type CashfreeOrder struct {
	OrderID     string `json:"order_id"`
	PaymentLink string `json:"payment_link"`
}

type cashfreeOrderRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails cashfreeCustomer  `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta `json:"order_meta"`
}

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type cashfreeOrderMeta struct {
	ReturnURL string `json:"return_url"`
	NotifyURL string `json:"notify_url"`
}

type cashfreeOrderResponse struct {
	OrderID     string `json:"order_id"`
	PaymentLink string `json:"payment_link"`
}

// CreateOrder registers the order with the gateway and returns the hosted
// payment link the customer is redirected to.
func (c *CashfreeClient) CreateOrder(orderID string, amount float64, customerID, customerName, customerEmail, customerPhone, returnURL string) (*CashfreeOrder, error) {
	payload := cashfreeOrderRequest{
		OrderID:       orderID,
		OrderAmount:   amount,
		OrderCurrency: "INR",
		CustomerDetails: cashfreeCustomer{
			CustomerID:    customerID,
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			CustomerPhone: customerPhone,
		},
		OrderMeta: cashfreeOrderMeta{
			ReturnURL: returnURL,
			NotifyURL: c.cfg.NotifyURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequest("POST", c.cfg.BaseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.cfg.AppID)
	req.Header.Set("x-client-secret", c.cfg.SecretKey)
	req.Header.Set("x-api-version", c.cfg.APIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Cashfree API error: %s", string(respBody))
		return nil, fmt.Errorf("cashfree returned non-200 status: %d", resp.StatusCode)
	}

	var orderResp cashfreeOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %v", err)
	}

	return &CashfreeOrder{OrderID: orderResp.OrderID, PaymentLink: orderResp.PaymentLink}, nil
}

// VerifyWebhookSignature recomputes the base64 HMAC-SHA256 of the exact
// payload bytes and compares it to the signature the gateway sent.
func (c *CashfreeClient) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	mac.Write(rawBody)
	computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(signature))
}
