package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse creates or reuses a payment order for the course. The
// reconciliation service is injected; the handler only maps its errors to
// the HTTP surface.
func EnrollInCourse(svc *enrollment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		courseID := c.Locals("courseID").(int)

		result, err := svc.RequestEnrollment(userID, uint(courseID))
		if err != nil {
			var gatewayErr *enrollment.GatewayError
			switch {
			case errors.Is(err, enrollment.ErrCourseNotFound):
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not available for enrollment!", nil)
			case errors.Is(err, enrollment.ErrAlreadyEnrolled):
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
			case errors.As(err, &gatewayErr):
				return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway error. Please try again.", nil)
			default:
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment. Please try again.", nil)
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", result)
	}
}

// GetEnrollmentStatus lets the client poll for webhook-driven activation
func GetEnrollmentStatus(svc *enrollment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		courseID := c.Locals("courseID").(int)

		status, err := svc.Status(userID, uint(courseID))
		if err != nil {
			if errors.Is(err, enrollment.ErrEnrollmentNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment status!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched!", fiber.Map{
			"status": status,
		})
	}
}

// GetUserEnrollments lists the user's active enrollments with per-course progress
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND status = ?", userID, courseModels.EnrollmentActive).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrolledCourse struct {
		courseModels.Course
		CompletedLessons int64   `json:"completed_lessons"`
		TotalLessons     int64   `json:"total_lessons"`
		Progress         float64 `json:"progress"`
	}

	result := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", e.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		completed, total := courseProgressCounts(userID, e.CourseID)
		progress := 0.0
		if total > 0 {
			progress = float64(completed) / float64(total) * 100
		}

		result = append(result, EnrolledCourse{
			Course:           course,
			CompletedLessons: completed,
			TotalLessons:     total,
			Progress:         progress,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"courses": result,
	})
}
