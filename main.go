package main

import (
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/payment"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	webhookRoutes "lms/routers/webhookRoutes"
	"lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	gateway := payment.NewRazorpayClient(
		config.AppConfig.RazorpayApiURL,
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
	)

	enrollmentService := enrollment.NewService(database.Database.Db, gateway)
	enrollmentService.SetActivationCallback(func(userID, courseID uint) {
		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil {
			log.Printf("[ENROLLMENT] Failed to load user %d for activation mail: %v", userID, err)
			return
		}

		var course courseModels.Course
		if err := database.Database.Db.First(&course, courseID).Error; err != nil {
			log.Printf("[ENROLLMENT] Failed to load course %d for activation mail: %v", courseID, err)
			return
		}

		if err := utils.SendEnrollmentActivatedEmail(user.Email, user.Name, course.Title); err != nil {
			log.Printf("[ENROLLMENT] Failed to send activation mail to %s: %v", user.Email, err)
		}
	})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded course assets
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	courseRoutes.SetupCourseRoutes(app, enrollmentService)
	webhookRoutes.SetupWebhookRoutes(app, enrollmentService, config.AppConfig.RazorpayWebhookSecret)

	scheduler := utils.InitializeReconciliationScheduler()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
