package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.PublishCourse(), controllers.AdminPublishCourse)

	// Chapter management
	adminGroup.Post("/:id/chapter", middleware.JWTMiddleware, validators.CreateChapter(), controllers.AdminCreateChapter)
	adminGroup.Put("/:course_id/chapter/:chapter_id", middleware.JWTMiddleware, validators.UpdateChapter(), controllers.AdminUpdateChapter)
	adminGroup.Delete("/:course_id/chapter/:chapter_id", middleware.JWTMiddleware, validators.ChapterIDParams(), controllers.AdminDeleteChapter)
	adminGroup.Post("/:id/chapter/reorder", middleware.JWTMiddleware, validators.ReorderChapters(), controllers.AdminReorderChapters)

	// Lesson management
	adminGroup.Post("/:course_id/chapter/:chapter_id/lesson", middleware.JWTMiddleware, validators.CreateLesson(), controllers.AdminCreateLesson)

	chapterGroup := app.Group("/admin/chapter")
	chapterGroup.Put("/:chapter_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.UpdateLesson(), controllers.AdminUpdateLesson)
	chapterGroup.Delete("/:chapter_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.LessonIDParams(), controllers.AdminDeleteLesson)
	chapterGroup.Post("/:chapter_id/lesson/reorder", middleware.JWTMiddleware, validators.ReorderLessons(), controllers.AdminReorderLessons)

	// Uploads
	uploadGroup := app.Group("/admin/upload")
	uploadGroup.Post("/", middleware.JWTMiddleware, controllers.AdminUploadFile)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, controllers.AdminDashboardStats)
	dashGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.AdminEnrollmentStats)
}
