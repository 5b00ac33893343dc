package course

import "gorm.io/gorm"

// Lesson is a single unit of content inside a chapter, ordered by position
type Lesson struct {
	gorm.Model
	ChapterID    uint   `json:"chapter_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	ThumbnailKey string `json:"thumbnail_key"`
	VideoKey     string `json:"video_key"`
	Position     int    `json:"position" gorm:"not null"` // 1-based within a chapter
	IsDeleted    bool   `gorm:"default:false"`
}
