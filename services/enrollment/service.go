package enrollment

import (
	"errors"
	"fmt"
	"log"
	"time"

	courseModels "lms/models/course"
	"lms/payment"

	"gorm.io/gorm"
)

// Webhook event types emitted by the gateway
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventRefundProcessed = "refund.processed"
)

// OrderResult is returned to the client so it can open the hosted checkout
type OrderResult struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"` // major units, for display
	Currency    string  `json:"currency"`
	CourseTitle string  `json:"courseTitle"`
}

// Service reconciles enrollment requests against gateway orders and applies
// asynchronous webhook events. Both the database handle and the gateway
// client are injected; the service holds no ambient state.
type Service struct {
	db       *gorm.DB
	gateway  payment.Gateway
	onActive func(userID, courseID uint)
}

// NewService builds a reconciliation service from its dependencies
func NewService(db *gorm.DB, gateway payment.Gateway) *Service {
	return &Service{db: db, gateway: gateway}
}

// SetActivationCallback registers a hook invoked after an enrollment
// transitions to ACTIVE, used for confirmation emails. Optional.
func (s *Service) SetActivationCallback(fn func(userID, courseID uint)) {
	s.onActive = fn
}

// RequestEnrollment decides, for the given user and course, whether to reuse
// a pending gateway order, create a new one, or reject the request.
//
// The gateway call happens before the transaction that persists the PENDING
// row so no lock is held across a network call. The transaction re-checks
// the ACTIVE/PENDING invariants to guard against a concurrent request from
// the same user; the unique (user_id, course_id) index is the final arbiter.
func (s *Service) RequestEnrollment(userID, courseID uint) (*OrderResult, error) {
	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ? AND status = ?",
		courseID, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err == nil {
		switch existing.Status {
		case courseModels.EnrollmentActive:
			return nil, ErrAlreadyEnrolled
		case courseModels.EnrollmentPending:
			// Reuse the stored order; repeated client retries must never
			// create a second charge.
			return &OrderResult{
				OrderID:     existing.GatewayOrderID,
				Amount:      existing.Amount,
				Currency:    existing.Currency,
				CourseTitle: course.Title,
			}, nil
		}
		// CANCELLED or REFUNDED rows are reset to PENDING below with a
		// fresh order; the unique index forbids a second row per pair.
	}

	expectedAmount := payment.ToSubUnits(course.Price, course.Currency)
	receipt := payment.BoundReceipt(fmt.Sprintf("course_%d_%d_%d", courseID, userID, time.Now().UnixMilli()))

	order, gerr := s.gateway.CreateOrder(expectedAmount, course.Currency, receipt, map[string]string{
		"courseId":    fmt.Sprintf("%d", courseID),
		"courseTitle": course.Title,
		"userId":      fmt.Sprintf("%d", userID),
	})
	if gerr != nil {
		log.Printf("[RECONCILE] Order creation failed for user %d course %d: %v", userID, courseID, gerr)
		return nil, &GatewayError{Err: gerr}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Re-check inside the transaction: a concurrent request may have won
	// the race since the first read.
	var current courseModels.Enrollment
	err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}

	if err == nil {
		switch current.Status {
		case courseModels.EnrollmentActive:
			tx.Rollback()
			return nil, ErrAlreadyEnrolled
		case courseModels.EnrollmentPending:
			tx.Rollback()
			return &OrderResult{
				OrderID:     current.GatewayOrderID,
				Amount:      current.Amount,
				Currency:    current.Currency,
				CourseTitle: course.Title,
			}, nil
		}

		// Reset the terminal row back to PENDING with the new order
		current.Status = courseModels.EnrollmentPending
		current.Amount = course.Price
		current.ExpectedAmount = expectedAmount
		current.Currency = course.Currency
		current.GatewayOrderID = order.ID
		current.GatewayPaymentID = ""
		if err := tx.Save(&current).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		record := courseModels.Enrollment{
			UserID:         userID,
			CourseID:       courseID,
			Status:         courseModels.EnrollmentPending,
			Amount:         course.Price,
			ExpectedAmount: expectedAmount,
			Currency:       course.Currency,
			GatewayOrderID: order.ID,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &OrderResult{
		OrderID:     order.ID,
		Amount:      course.Price,
		Currency:    course.Currency,
		CourseTitle: course.Title,
	}, nil
}

// ApplyWebhookEvent transitions enrollment status in response to a gateway
// event. Delivery is at-least-once, so every transition is an absolute
// status set and re-applying an event leaves state unchanged. An unknown
// order id is a no-op: the gateway retries events for orders we never
// tracked, such as test events.
func (s *Service) ApplyWebhookEvent(eventType, orderID, paymentID string, paidAmount int64) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var enrollment courseModels.Enrollment
	if err := tx.Where("gateway_order_id = ?", orderID).First(&enrollment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	activated := false

	switch eventType {
	case EventPaymentCaptured:
		if enrollment.Status == courseModels.EnrollmentActive {
			break // already applied
		}
		if enrollment.ExpectedAmount != paidAmount {
			// Mismatched captures leave the row PENDING for manual
			// reconciliation; the money position is unresolved.
			log.Printf("[RECONCILE] Amount mismatch for order %s: expected %d, paid %d",
				orderID, enrollment.ExpectedAmount, paidAmount)
			break
		}
		enrollment.Status = courseModels.EnrollmentActive
		enrollment.GatewayPaymentID = paymentID
		if err := tx.Save(&enrollment).Error; err != nil {
			tx.Rollback()
			return err
		}
		activated = true

	case EventPaymentFailed:
		enrollment.Status = courseModels.EnrollmentCancelled
		if err := tx.Save(&enrollment).Error; err != nil {
			tx.Rollback()
			return err
		}

	case EventRefundProcessed:
		enrollment.Status = courseModels.EnrollmentRefunded
		if err := tx.Save(&enrollment).Error; err != nil {
			tx.Rollback()
			return err
		}

	default:
		// Unhandled event, do nothing
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	if activated && s.onActive != nil {
		go s.onActive(enrollment.UserID, enrollment.CourseID)
	}

	return nil
}

// Status returns the current enrollment status for client polling. No
// ordering is guaranteed between an enrollment response and the webhook, so
// the client re-fetches rather than assuming synchronous activation.
func (s *Service) Status(userID, courseID uint) (string, error) {
	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEnrollmentNotFound
		}
		return "", err
	}
	return enrollment.Status, nil
}
