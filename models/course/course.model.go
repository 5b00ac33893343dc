package course

import "gorm.io/gorm"

// Course status values
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title            string  `json:"title"`
	Slug             string  `json:"slug" gorm:"uniqueIndex;not null"`
	Description      string  `json:"description" gorm:"type:text"`
	SmallDescription string  `json:"small_description"`
	FileKey          string  `json:"file_key"` // thumbnail upload key
	Price            float64 `json:"price" gorm:"default:0"` // major currency units
	Currency         string  `json:"currency" gorm:"type:varchar(10);default:'INR'"`
	Duration         int64   `json:"duration" gorm:"default:0"` // duration in hours
	Level            string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Category         string  `json:"category"`
	Status           string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, ARCHIVED
	IsDeleted        bool    `gorm:"default:false"`
}
