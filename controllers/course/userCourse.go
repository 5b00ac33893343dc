package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for the catalog
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Category string `json:"category"`
		Level    string `json:"level"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished)

	if ok && reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if ok && reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseBySlug returns a published course with its chapter/lesson outline
func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND status = ?",
		slug, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	// Outline only: titles and positions, no video keys for unenrolled viewers
	type LessonOutline struct {
		ID       uint   `json:"id"`
		Title    string `json:"title"`
		Position int    `json:"position"`
	}
	type ChapterOutline struct {
		ID       uint            `json:"id"`
		Title    string          `json:"title"`
		Position int             `json:"position"`
		Lessons  []LessonOutline `json:"lessons"`
	}

	outline := make([]ChapterOutline, len(chapters))
	for i, ch := range chapters {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("chapter_id = ? AND is_deleted = ?", ch.ID, false).Order("position asc").Find(&lessons)

		items := make([]LessonOutline, len(lessons))
		for j, l := range lessons {
			items[j] = LessonOutline{ID: l.ID, Title: l.Title, Position: l.Position}
		}
		outline[i] = ChapterOutline{ID: ch.ID, Title: ch.Title, Position: ch.Position, Lessons: items}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": outline,
	})
}
