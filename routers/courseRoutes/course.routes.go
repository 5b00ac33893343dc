package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/services/enrollment"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App, svc *enrollment.Service) {
	courseGroup := app.Group("/course")

	// Catalog (published courses)
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/slug/:slug", validators.CourseSlugParam(), controllers.GetCourseBySlug)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse(svc))
	courseGroup.Get("/:id/enrollment", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.GetEnrollmentStatus(svc))

	// Progress tracking
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.MarkLessonComplete(), controllers.MarkLessonComplete)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseProgress)
	courseGroup.Get("/sidebar/:slug", middleware.JWTMiddleware, validators.CourseSlugParam(), controllers.GetCourseSidebar)

	// User enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
}
