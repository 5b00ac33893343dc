package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email via SMTP
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	headers := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
}

// SendOTPEmail sends the email verification code
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2>Verify your email</h2>
					<p>Use the following code to verify your email address. It is valid for 10 minutes.</p>
					<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
					<p>If you did not create an account, you can ignore this email.</p>
				</div>
			</body>
		</html>`, otp)

	return SendEmail([]string{email}, "Email Verification Code", body)
}

// SendEnrollmentActivatedEmail notifies a user that their course access is live
func SendEnrollmentActivatedEmail(email, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2>Hi %s,</h2>
					<p>Your payment was received and your enrollment in <b>%s</b> is now active.</p>
					<p>Head to your dashboard to start learning.</p>
				</div>
			</body>
		</html>`, name, courseTitle)

	return SendEmail([]string{email}, "Enrollment Confirmed: "+courseTitle, body)
}

// SendPendingEnrollmentReport mails the admin a list of stale pending orders
func SendPendingEnrollmentReport(adminEmail string, lines []string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; padding: 20px;">
				<h2>Stale pending enrollments</h2>
				<p>The following enrollments have been PENDING for more than 24 hours and may need manual reconciliation:</p>
				<pre>%s</pre>
			</body>
		</html>`, strings.Join(lines, "\n"))

	return SendEmail([]string{adminEmail}, "Pending enrollment report", body)
}
