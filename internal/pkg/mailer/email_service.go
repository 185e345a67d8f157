package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"lending-concierge-be/internal/config"
)

type IEmailService interface {
	SendOTPEmail(to, otp string) error
	SendPasswordResetEmail(to, resetLink string) error
	SendInquiryNotification(to, brokerName, caseTitle, borrowerName, borrowerEmail, message string) error
}

type emailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) IEmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Email, s.cfg.SenderName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Email, s.cfg.Password)
	return d.DialAndSend(m)
}

func (s *emailService) SendOTPEmail(to, otp string) error {
	body := fmt.Sprintf(`
		<h2>Verify your email</h2>
		<p>Your verification code is:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>This code expires in 15 minutes. If you did not sign up, ignore this email.</p>
	`, otp)
	return s.send(to, "Your LendBridge verification code", body)
}

func (s *emailService) SendPasswordResetEmail(to, resetLink string) error {
	body := fmt.Sprintf(`
		<h2>Reset your password</h2>
		<p>We received a request to reset your password. Click the link below to continue:</p>
		<p><a href="%s">Reset password</a></p>
		<p>The link expires in 1 hour. If you did not request this, ignore this email.</p>
	`, resetLink)
	return s.send(to, "Reset your LendBridge password", body)
}

func (s *emailService) SendInquiryNotification(to, brokerName, caseTitle, borrowerName, borrowerEmail, message string) error {
	body := fmt.Sprintf(`
		<h2>New inquiry on %s</h2>
		<p>Hi %s,</p>
		<p><strong>%s</strong> (%s) sent an inquiry:</p>
		<blockquote>%s</blockquote>
		<p>Reply directly or follow up from your dashboard.</p>
	`, caseTitle, brokerName, borrowerName, borrowerEmail, message)
	return s.send(to, fmt.Sprintf("New inquiry: %s", caseTitle), body)
}
