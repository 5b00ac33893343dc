package course

import "gorm.io/gorm"

// Enrollment status values. Rows are created PENDING at order time and only
// webhook handling moves them to ACTIVE, CANCELLED or REFUNDED.
const (
	EnrollmentPending   = "PENDING"
	EnrollmentActive    = "ACTIVE"
	EnrollmentCancelled = "CANCELLED"
	EnrollmentRefunded  = "REFUNDED"
)

// Enrollment tracks a user's paid access to a course. The composite unique
// index on (user_id, course_id) is the authoritative guard against duplicate
// enrollments; gateway_order_id is the sole correlation key for webhooks,
// which carry no user id. Enrollments are never hard-deleted (audit trail).
type Enrollment struct {
	gorm.Model
	UserID           uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID         uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Status           string  `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Amount           float64 `json:"amount"`                                             // price charged, major units
	ExpectedAmount   int64   `json:"expected_amount"`                                    // gateway sub-units, validated against webhook
	Currency         string  `json:"currency" gorm:"type:varchar(10);default:'INR'"`
	GatewayOrderID   string  `json:"gateway_order_id" gorm:"type:varchar(100);uniqueIndex"`
	GatewayPaymentID string  `json:"gateway_payment_id" gorm:"type:varchar(100)"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
