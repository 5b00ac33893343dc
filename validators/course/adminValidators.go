package courseValidator

import (
	"lms/middleware"
	"lms/payment"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validLevels = map[string]bool{"BEGINNER": true, "INTERMEDIATE": true, "ADVANCED": true}

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string  `json:"title"`
			Description      string  `json:"description"`
			SmallDescription string  `json:"small_description"`
			FileKey          string  `json:"file_key"`
			Price            float64 `json:"price"`
			Currency         string  `json:"currency"`
			Duration         int64   `json:"duration"`
			Level            string  `json:"level"`
			Category         string  `json:"category"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.SmallDescription = strings.TrimSpace(reqData.SmallDescription)
		reqData.Currency = strings.ToUpper(strings.TrimSpace(reqData.Currency))
		reqData.Level = strings.ToUpper(strings.TrimSpace(reqData.Level))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		} else if len(reqData.Title) > 100 {
			errors["title"] = "Title must be less than 100 characters!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}

		if reqData.SmallDescription == "" {
			errors["small_description"] = "Small description is required!"
		} else if len(reqData.SmallDescription) > 200 {
			errors["small_description"] = "Small description must be less than 200 characters!"
		}

		if reqData.Price <= 0 {
			errors["price"] = "Price must be greater than 0!"
		}

		if reqData.Currency != "" && !payment.IsSupportedCurrency(reqData.Currency) {
			errors["currency"] = "Unsupported currency!"
		}

		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		} else if reqData.Duration > 500 {
			errors["duration"] = "Duration must be less than 500!"
		}

		if reqData.Level == "" {
			errors["level"] = "Level is required!"
		} else if !validLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title            string   `json:"title"`
			Description      string   `json:"description"`
			SmallDescription string   `json:"small_description"`
			FileKey          string   `json:"file_key"`
			Price            *float64 `json:"price"`
			Currency         string   `json:"currency"`
			Duration         int64    `json:"duration"`
			Level            string   `json:"level"`
			Category         string   `json:"category"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Currency = strings.ToUpper(strings.TrimSpace(reqData.Currency))
		reqData.Level = strings.ToUpper(strings.TrimSpace(reqData.Level))

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}

		if reqData.Price != nil && *reqData.Price <= 0 {
			errors["price"] = "Price must be greater than 0!"
		}

		if reqData.Currency != "" && !payment.IsSupportedCurrency(reqData.Currency) {
			errors["currency"] = "Unsupported currency!"
		}

		if reqData.Level != "" && !validLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseIDParam validates the course ID path parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// AdminList validates pagination query parameters for admin listings
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}

// PublishCourse validates the course status change request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		status := strings.ToUpper(strings.TrimSpace(reqData.Status))
		validStatuses := map[string]bool{"DRAFT": true, "PUBLISHED": true, "ARCHIVED": true}
		if !validStatuses[status] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be DRAFT, PUBLISHED, or ARCHIVED!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("courseStatus", status)
		return c.Next()
	}
}
