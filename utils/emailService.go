package utils

import (
	"deptportal/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. It prefers the SendGrid API when an API
// key is configured and falls back to SMTP otherwise. The error is returned
// synchronously; callers decide whether a failed send fails their operation.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail(config.AppConfig.DeptName, config.AppConfig.EmailSender)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email, status %d: %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid send failed with status %d", resp.StatusCode)
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", config.AppConfig.DeptName, from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email via SMTP: %v", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the portal's standard HTML shell.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.otp-code { text-align: center; color: #2E7D32; font-size: 40px; letter-spacing: 6px; margin: 20px 0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FFB300; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from the department portal. Please do not reply.
			</div>
		</div>
	</body>
	</html>
	`, strings.ToUpper(config.AppConfig.DeptName), title, bodyContent)
}

// --- Triggers ---

// SendOTPEmail delivers a password-reset code. It is called synchronously:
// if the send fails the reset request itself must fail, so the caller is
// never left believing a code is on the way.
func SendOTPEmail(email, name, otp string) error {
	subject := "Password Reset OTP - " + config.AppConfig.DeptName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your One Time Password (OTP) for resetting your portal password is:</p>
		<h1 class="otp-code">%s</h1>
		<div class="info-box">
			This code is valid for 10 minutes and can be attempted at most 3 times.
			Do not share it with anyone.
		</div>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, name, otp)

	return SendEmail([]string{email}, subject, getEmailTemplate("Password Reset Verification", body))
}

// SendPasswordChangedEmail confirms a completed password reset. Best-effort:
// the password change has already committed, so a failed send is only logged.
func SendPasswordChangedEmail(email, name string) {
	subject := "Your Password Was Changed - " + config.AppConfig.DeptName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The password for your portal account was just changed using the OTP reset flow.</p>
		<p style="color: #C62828; font-weight: bold;">If you did not make this change, contact the department office immediately.</p>
	`, name)

	go func() {
		if err := SendEmail([]string{email}, subject, getEmailTemplate("Password Changed", body)); err != nil {
			log.Printf("Error sending password-change confirmation to %s: %v", email, err)
		}
	}()
}

// SendWelcomeEmail notifies a newly provisioned account holder.
func SendWelcomeEmail(email, name, role string) {
	subject := "Welcome to the " + config.AppConfig.DeptName + " Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A %s account has been created for you on the department portal.</p>
		<p>Login with your registered email. Use "Forgot Password" to set your own password on first login.</p>
	`, name, role)

	go func() {
		if err := SendEmail([]string{email}, subject, getEmailTemplate("Account Created", body)); err != nil {
			log.Printf("Error sending welcome email to %s: %v", email, err)
		}
	}()
}

// SendMentorDigestEmail sends a mentor the list of mentees with low attendance.
func SendMentorDigestEmail(email, name string, rows []string) error {
	subject := "Mentee Attendance Digest - " + config.AppConfig.DeptName

	items := ""
	for _, r := range rows {
		items += "<li style=\"margin-bottom: 6px;\">" + r + "</li>"
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The following mentees are below the 75%% attendance threshold:</p>
		<ul>%s</ul>
		<p>Please follow up with them during your next mentoring session.</p>
	`, name, items)

	return SendEmail([]string{email}, subject, getEmailTemplate("Mentee Attendance Digest", body))
}
