package webhookRoutes

import (
	webhookController "lms/controllers/webhook"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupWebhookRoutes(app *fiber.App, svc *enrollment.Service, webhookSecret string) {
	webhookGroup := app.Group("/webhook")

	webhookGroup.Post("/razorpay", webhookController.RazorpayWebhook(svc, webhookSecret))
}
