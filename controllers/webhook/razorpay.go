package webhookController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"

	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// webhookEvent is the gateway's event envelope. Only the payment entity
// fields used for reconciliation are decoded.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Amount  int64  `json:"amount"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// RazorpayWebhook verifies the gateway signature over the raw body and
// dispatches the event to the reconciliation service. A 500 response makes
// the gateway retry; processing errors are never leaked to the caller.
func RazorpayWebhook(svc *enrollment.Service, webhookSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if webhookSecret == "" {
			log.Println("[WEBHOOK] Webhook secret not configured, rejecting request")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Webhook secret not configured",
			})
		}

		rawBody := c.Body()

		signature := c.Get("x-razorpay-signature")
		if signature == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing signature",
			})
		}

		mac := hmac.New(sha256.New, []byte(webhookSecret))
		mac.Write(rawBody)
		expectedSignature := hex.EncodeToString(mac.Sum(nil))

		if signature != expectedSignature {
			log.Println("[WEBHOOK] Signature mismatch, rejecting request")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		var event webhookEvent
		if err := json.Unmarshal(rawBody, &event); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON",
			})
		}

		entity := event.Payload.Payment.Entity
		if err := svc.ApplyWebhookEvent(event.Event, entity.OrderID, entity.ID, entity.Amount); err != nil {
			log.Printf("[WEBHOOK] Failed to process %s for order %s: %v", event.Event, entity.OrderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Webhook processing failed",
			})
		}

		return c.JSON(fiber.Map{"status": "ok"})
	}
}
