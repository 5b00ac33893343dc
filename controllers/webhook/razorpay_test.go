package webhookController

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"testing"

	courseModels "lms/models/course"
	"lms/payment"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "whsec_test"

type stubGateway struct{}

func (stubGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error) {
	return &payment.Order{ID: "order_stub_1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func setupWebhookApp(t *testing.T) (*fiber.App, *gorm.DB, *enrollment.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&courseModels.Course{}, &courseModels.Enrollment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	svc := enrollment.NewService(db, stubGateway{})

	app := fiber.New()
	app.Post("/webhook/razorpay", RazorpayWebhook(svc, testSecret))
	return app, db, svc
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func seedPendingEnrollment(t *testing.T, db *gorm.DB, svc *enrollment.Service) string {
	t.Helper()

	course := courseModels.Course{
		Title:    "Go Fundamentals",
		Slug:     "go-fundamentals",
		Price:    499.00,
		Currency: "INR",
		Status:   courseModels.StatusPublished,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}

	result, err := svc.RequestEnrollment(7, course.ID)
	if err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	return result.OrderID
}

func capturedEvent(orderID string, amount int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"%s","amount":%d}}}}`,
		orderID, amount))
}

func TestWebhookMissingSignature(t *testing.T) {
	app, _, _ := setupWebhookApp(t)

	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(capturedEvent("order_1", 49900)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWebhookInvalidSignature(t *testing.T) {
	app, _, _ := setupWebhookApp(t)

	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(capturedEvent("order_1", 49900)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-razorpay-signature", "deadbeef")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWebhookMalformedJSON(t *testing.T) {
	app, _, _ := setupWebhookApp(t)

	body := []byte(`{"event":`)
	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-razorpay-signature", signBody(body))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWebhookSecretNotConfigured(t *testing.T) {
	app := fiber.New()
	app.Post("/webhook/razorpay", RazorpayWebhook(nil, ""))

	body := capturedEvent("order_1", 49900)
	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-razorpay-signature", signBody(body))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestWebhookCapturedActivatesEnrollment(t *testing.T) {
	app, db, svc := setupWebhookApp(t)
	orderID := seedPendingEnrollment(t, db, svc)

	body := capturedEvent(orderID, 49900)
	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-razorpay-signature", signBody(body))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var row courseModels.Enrollment
	assert.NoError(t, db.Where("gateway_order_id = ?", orderID).First(&row).Error)
	assert.Equal(t, courseModels.EnrollmentActive, row.Status)
	assert.Equal(t, "pay_1", row.GatewayPaymentID)
}

func TestWebhookUnknownOrderReturnsOK(t *testing.T) {
	app, _, _ := setupWebhookApp(t)

	body := capturedEvent("order_never_seen", 49900)
	req := httptest.NewRequest("POST", "/webhook/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-razorpay-signature", signBody(body))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
