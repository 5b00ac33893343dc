package course

import "gorm.io/gorm"

// LessonProgress records a user's completion of a single lesson
type LessonProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID  uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Completed bool `json:"completed" gorm:"default:false"`
}

func (LessonProgress) TableName() string {
	return "lesson_progresses"
}
