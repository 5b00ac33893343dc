package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseList validates catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Category string `json:"category"`
			Level    string `json:"level"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		reqData.Level = strings.ToUpper(strings.TrimSpace(reqData.Level))
		if reqData.Level != "" && !validLevels[reqData.Level] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid level filter!", nil)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseSlugParam validates the course slug path parameter
func CourseSlugParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		c.Locals("courseSlug", slug)
		return c.Next()
	}
}
