package course

import "gorm.io/gorm"

// Chapter groups lessons inside a course, ordered by position
type Chapter struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Position  int    `json:"position" gorm:"not null"` // 1-based within a course
	IsDeleted bool   `gorm:"default:false"`
}
