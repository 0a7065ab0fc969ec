package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
)

var ErrNotConfigured = errors.New("email: SMTP is not configured")

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string // defaults to Username
	To       string // support inbox
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends contact form messages to the support inbox via SMTP.
type EmailService struct {
	cfg  Config
	send SendFunc
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

func NewEmailService(cfg Config) *EmailService {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

// WithSendFunc replaces the SMTP transport, for tests.
func (s *EmailService) WithSendFunc(f SendFunc) *EmailService {
	s.send = f
	return s
}

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New Contact Form Submission</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New message from the ChefDhundo contact form</h2>
  <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #e67e22;">{{.Message}}</div>
  <p style="color: #888; font-size: 12px;">Reply to {{.SenderEmail}} to answer this message.</p>
</body>
</html>`))

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(data ContactEmailData) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: Contact Form: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.cfg.From,
		s.cfg.To,
		data.SenderEmail,
		data.Subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{s.cfg.To}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.To != ""
}
