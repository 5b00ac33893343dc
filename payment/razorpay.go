package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// maxReceiptLen is the gateway's limit on the merchant receipt string
const maxReceiptLen = 40

// Order is the subset of the gateway's order entity we track
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates payment orders with an external provider. The concrete
// implementation is the Razorpay Orders API; tests substitute a stub.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*Order, error)
}

// RazorpayClient talks to the Razorpay Orders API over HTTPS basic auth
type RazorpayClient struct {
	keyID     string
	keySecret string
	client    *resty.Client
}

// NewRazorpayClient builds a client for the given API base URL and key pair
func NewRazorpayClient(baseURL, keyID, keySecret string) *RazorpayClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second)

	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		client:    client,
	}
}

// CreateOrder creates a new gateway order for the given sub-unit amount
func (r *RazorpayClient) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	body := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  BoundReceipt(receipt),
	}
	if len(notes) > 0 {
		body["notes"] = notes
	}

	resp, err := r.client.R().
		SetBasicAuth(r.keyID, r.keySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order creation failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	return &order, nil
}

// BoundReceipt truncates a receipt string to the gateway's length limit.
// Truncation never fails; overly long receipts simply lose their tail.
func BoundReceipt(receipt string) string {
	if len(receipt) > maxReceiptLen {
		return receipt[:maxReceiptLen]
	}
	return receipt
}
