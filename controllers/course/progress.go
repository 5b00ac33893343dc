package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// courseProgressCounts returns completed and total lesson counts for a user
// across all chapters of a course
func courseProgressCounts(userID, courseID uint) (int64, int64) {
	var chapterIDs []uint
	database.Database.Db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Pluck("id", &chapterIDs)

	if len(chapterIDs) == 0 {
		return 0, 0
	}

	var total int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
		Count(&total)

	var lessonIDs []uint
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
		Pluck("id", &lessonIDs)

	var completed int64
	if len(lessonIDs) > 0 {
		database.Database.Db.Model(&courseModels.LessonProgress{}).
			Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
			Count(&completed)
	}

	return completed, total
}

// requireActiveEnrollment checks the caller has paid access to the course
func requireActiveEnrollment(userID, courseID uint) bool {
	var e courseModels.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, courseModels.EnrollmentActive).First(&e).Error
	return err == nil
}

// MarkLessonComplete upserts the user's completion record for a lesson
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ?",
		courseID, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Lesson must belong to one of the course's chapters
	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("lessons.id = ? AND chapters.course_id = ? AND lessons.is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !requireActiveEnrollment(userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Upsert: re-marking a completed lesson is a no-op
	var progress courseModels.LessonProgress
	err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err == nil {
		if !progress.Completed {
			progress.Completed = true
			if err := database.Database.Db.Save(&progress).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as complete!", nil)
			}
		}
	} else {
		progress = courseModels.LessonProgress{
			UserID:    userID,
			LessonID:  uint(lessonID),
			Completed: true,
		}
		if err := database.Database.Db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as complete!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", progress)
}

// GetCourseProgress returns the user's completion summary for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	if !requireActiveEnrollment(userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	completed, total := courseProgressCounts(userID, uint(courseID))
	progress := 0.0
	if total > 0 {
		progress = float64(completed) / float64(total) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lessons": completed,
		"total_lessons":     total,
		"progress":          progress,
	})
}

// GetCourseSidebar returns the full chapter/lesson tree with completion
// flags for the course player. Requires an ACTIVE enrollment.
func GetCourseSidebar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !requireActiveEnrollment(userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	type LessonWithProgress struct {
		courseModels.Lesson
		Completed bool `json:"completed"`
	}
	type ChapterWithLessons struct {
		courseModels.Chapter
		Lessons []LessonWithProgress `json:"lessons"`
	}

	sidebar := make([]ChapterWithLessons, len(chapters))
	for i, ch := range chapters {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("chapter_id = ? AND is_deleted = ?", ch.ID, false).Order("position asc").Find(&lessons)

		items := make([]LessonWithProgress, len(lessons))
		for j, l := range lessons {
			var progress courseModels.LessonProgress
			completed := false
			if err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", userID, l.ID).First(&progress).Error; err == nil {
				completed = progress.Completed
			}
			items[j] = LessonWithProgress{Lesson: l, Completed: completed}
		}
		sidebar[i] = ChapterWithLessons{Chapter: ch, Lessons: items}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": sidebar,
	})
}
