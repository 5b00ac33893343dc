package utils

import (
	"fmt"
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReconciliationScheduler sets up the daily stale-pending report.
// Enrollments stuck in PENDING (dropped checkouts, amount mismatches held
// for manual review) are reported to the admin, never mutated automatically.
func InitializeReconciliationScheduler() *cron.Cron {
	log.Println("[PENDING-SCHEDULER] Initializing reconciliation scheduler...")

	c := cron.New()

	// Run daily at 9 AM to report stale pending enrollments
	c.AddFunc("0 9 * * *", func() {
		log.Println("[PENDING-SCHEDULER] Running daily pending enrollment check...")
		ReportStalePendingEnrollments()
	})

	c.Start()
	log.Println("[PENDING-SCHEDULER] Reconciliation scheduler started - runs daily at 9 AM")

	return c
}

// ReportStalePendingEnrollments finds enrollments PENDING for more than 24
// hours and emails a report to the configured admin address
func ReportStalePendingEnrollments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	var stale []courseModels.Enrollment
	if err := db.
		Where("status = ? AND updated_at < ?", courseModels.EnrollmentPending, cutoff).
		Order("updated_at asc").
		Find(&stale).Error; err != nil {
		log.Printf("[PENDING-SCHEDULER] Error fetching stale pending enrollments: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Println("[PENDING-SCHEDULER] No stale pending enrollments found")
		return
	}

	log.Printf("[PENDING-SCHEDULER] Found %d stale pending enrollments", len(stale))

	if config.AppConfig.AdminEmail == "" {
		return
	}

	lines := make([]string, 0, len(stale))
	for _, e := range stale {
		lines = append(lines, fmt.Sprintf("user=%d course=%d order=%s expected=%d pending_since=%s",
			e.UserID, e.CourseID, e.GatewayOrderID, e.ExpectedAmount, e.UpdatedAt.Format(time.RFC3339)))
	}

	if err := SendPendingEnrollmentReport(config.AppConfig.AdminEmail, lines); err != nil {
		log.Printf("[PENDING-SCHEDULER] Error sending report email: %v", err)
	}
}
