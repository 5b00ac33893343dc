package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats returns the headline totals for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	var totalUsers int64
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)

	var activeEnrollments int64
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("status = ?", courseModels.EnrollmentActive).Count(&activeEnrollments)

	var totalCourses int64
	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)

	var totalLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).Where("is_deleted = ?", false).Count(&totalLessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users":       totalUsers,
		"enrollments": activeEnrollments,
		"courses":     totalCourses,
		"lessons":     totalLessons,
	})
}

// AdminEnrollmentStats returns a 30-day enrollment time series for the
// dashboard chart. Days with no enrollments are zero-filled.
func AdminEnrollmentStats(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Select("created_at").
		Where("created_at >= ?", thirtyDaysAgo).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment stats!", nil)
	}

	counts := make(map[string]int)
	for i := 29; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		counts[day] = 0
	}

	for _, e := range enrollments {
		day := e.CreatedAt.Format("2006-01-02")
		if _, tracked := counts[day]; tracked {
			counts[day]++
		}
	}

	type DayCount struct {
		Date        string `json:"date"`
		Enrollments int    `json:"enrollments"`
	}

	series := make([]DayCount, 0, 30)
	for i := 29; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, DayCount{Date: day, Enrollments: counts[day]})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment stats fetched successfully!", fiber.Map{
		"last_30_days": series,
	})
}
