package enrollment

import (
	"errors"
	"fmt"
	"testing"

	courseModels "lms/models/course"
	"lms/payment"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway counts orders and can be forced to fail, so tests can assert
// that retries never create a second charge.
type fakeGateway struct {
	calls   int
	failErr error
}

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error) {
	g.calls++
	if g.failErr != nil {
		return nil, g.failErr
	}
	return &payment.Order{
		ID:       fmt.Sprintf("order_test_%d", g.calls),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func setupService(t *testing.T) (*Service, *fakeGateway, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&courseModels.Course{}, &courseModels.Enrollment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	gateway := &fakeGateway{}
	return NewService(db, gateway), gateway, db
}

func createCourse(t *testing.T, db *gorm.DB, price float64, currency, status string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:    "Go Fundamentals",
		Slug:     "go-fundamentals",
		Price:    price,
		Currency: currency,
		Status:   status,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	return course
}

func getEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		t.Fatalf("Failed to load enrollment: %v", err)
	}
	return enrollment
}

func TestRequestEnrollmentCreatesPendingOrder(t *testing.T) {
	svc, gateway, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)
	assert.Equal(t, "order_test_1", result.OrderID)
	assert.Equal(t, 499.00, result.Amount)
	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, "Go Fundamentals", result.CourseTitle)
	assert.Equal(t, 1, gateway.calls)

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentPending, enrollment.Status)
	assert.Equal(t, int64(49900), enrollment.ExpectedAmount)
	assert.Equal(t, "order_test_1", enrollment.GatewayOrderID)
}

func TestRequestEnrollmentReusesPendingOrder(t *testing.T) {
	svc, gateway, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	first, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	// Retrying while PENDING must return the stored order without a
	// second gateway call.
	second, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, gateway.calls)
}

func TestRequestEnrollmentRejectsActive(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	_, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, enrollment.GatewayOrderID, "pay_1", 49900))

	_, err = svc.RequestEnrollment(7, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestRequestEnrollmentUnknownCourse(t *testing.T) {
	svc, gateway, _ := setupService(t)

	_, err := svc.RequestEnrollment(7, 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Equal(t, 0, gateway.calls)
}

func TestRequestEnrollmentUnpublishedCourse(t *testing.T) {
	svc, gateway, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusDraft)

	_, err := svc.RequestEnrollment(7, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Equal(t, 0, gateway.calls)
}

func TestRequestEnrollmentGatewayFailure(t *testing.T) {
	svc, gateway, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)
	gateway.failErr = errors.New("gateway timeout")

	_, err := svc.RequestEnrollment(7, course.ID)

	var gatewayErr *GatewayError
	assert.ErrorAs(t, err, &gatewayErr)

	// No row may exist after a failed order creation.
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", 7, course.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRequestEnrollmentAfterCancellation(t *testing.T) {
	svc, gateway, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	first, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentFailed, first.OrderID, "pay_1", 49900))

	// A cancelled enrollment may re-enroll with a fresh order.
	second, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Equal(t, 2, gateway.calls)

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentPending, enrollment.Status)
	assert.Equal(t, second.OrderID, enrollment.GatewayOrderID)
	assert.Equal(t, "", enrollment.GatewayPaymentID)
}

func TestWebhookCapturedActivates(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, result.OrderID, "pay_1", 49900))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, "pay_1", enrollment.GatewayPaymentID)

	status, err := svc.Status(7, course.ID)
	assert.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentActive, status)
}

func TestWebhookCapturedIsIdempotent(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, result.OrderID, "pay_1", 49900))
	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, result.OrderID, "pay_1", 49900))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, "pay_1", enrollment.GatewayPaymentID)
}

func TestWebhookAmountMismatchStaysPending(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	// Paid amount does not match the expected sub-units; the enrollment
	// must not activate.
	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, result.OrderID, "pay_1", 100))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentPending, enrollment.Status)
	assert.Equal(t, "", enrollment.GatewayPaymentID)
}

func TestWebhookFailedCancels(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentFailed, result.OrderID, "pay_1", 49900))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentCancelled, enrollment.Status)
}

func TestWebhookRefundProcessed(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, result.OrderID, "pay_1", 49900))
	assert.NoError(t, svc.ApplyWebhookEvent(EventRefundProcessed, result.OrderID, "pay_1", 49900))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentRefunded, enrollment.Status)
}

func TestWebhookUnknownOrderIsNoOp(t *testing.T) {
	svc, _, _ := setupService(t)

	assert.NoError(t, svc.ApplyWebhookEvent(EventPaymentCaptured, "order_unknown", "pay_1", 49900))
}

func TestWebhookUnknownEventIsNoOp(t *testing.T) {
	svc, _, db := setupService(t)
	course := createCourse(t, db, 499.00, "INR", courseModels.StatusPublished)

	result, err := svc.RequestEnrollment(7, course.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.ApplyWebhookEvent("payment.authorized", result.OrderID, "pay_1", 49900))

	enrollment := getEnrollment(t, db, 7, course.ID)
	assert.Equal(t, courseModels.EnrollmentPending, enrollment.Status)
}

func TestStatusUnknownEnrollment(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Status(7, 999)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
