package enrollment

import (
	"errors"
	"fmt"
)

var (
	// ErrCourseNotFound is returned when the course is absent, deleted or not published
	ErrCourseNotFound = errors.New("course not found or not available for enrollment")

	// ErrAlreadyEnrolled is returned when an ACTIVE enrollment already exists
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	// ErrEnrollmentNotFound is returned when no enrollment exists for the user and course
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// GatewayError wraps a payment gateway failure. Callers should treat it as
// retryable; no enrollment row is written when order creation fails.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
