package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailService handles sending transactional mail via SMTP.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// Config holds SMTP connection settings.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// ResetEmailData holds the data for password-reset emails.
type ResetEmailData struct {
	UserName  string
	ResetCode string
}

// NewEmailService creates a new email service.
func NewEmailService(cfg Config) *EmailService {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &EmailService{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
	}
}

// IsConfigured reports whether the service has enough settings to send mail.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .code { font-size: 28px; letter-spacing: 6px; font-weight: bold; text-align: center;
                background: white; padding: 15px; border-left: 4px solid #0066cc; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Request</h1>
        </div>
        <div class="content">
            <p>Hello {{.UserName}},</p>
            <p>Use the code below to reset your password. It can be used once.</p>
            <div class="code">{{.ResetCode}}</div>
            <p>If you did not request a reset, you can ignore this email.</p>
        </div>
        <div class="footer">
            <p>This is an automated message; replies are not monitored.</p>
        </div>
    </div>
</body>
</html>`

// SendResetEmail sends a one-time password-reset code to the given address.
func (s *EmailService) SendResetEmail(to string, data ResetEmailData) error {
	tmpl, err := template.New("reset").Parse(resetEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Password Reset Code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
