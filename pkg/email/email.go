package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"office-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Service sends transactional mail over SMTP with STARTTLS.
type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	appURL       string
}

type twoFactorData struct {
	Code          string
	ExpiryMinutes int
}

type passwordResetData struct {
	ResetLink   string
	UserEmail   string
	ExpiryHours int
}

type temporaryPasswordData struct {
	TempPassword string
}

func NewService(cfg config.SMTPConfig, appURL string) *Service {
	return &Service{
		smtpHost:     cfg.Host,
		smtpPort:     cfg.Port,
		smtpUsername: cfg.Username,
		smtpPassword: cfg.Password,
		fromEmail:    cfg.FromEmail,
		fromName:     cfg.FromName,
		appURL:       appURL,
	}
}

// SendTwoFactorCode mails the 6-digit login code.
func (s *Service) SendTwoFactorCode(to, code string) error {
	return s.sendTemplated(to, "Votre code de connexion",
		"templates/two_factor_code.html",
		twoFactorData{Code: code, ExpiryMinutes: 10})
}

// SendPasswordResetLink mails the self-service reset link embedding the token.
func (s *Service) SendPasswordResetLink(to, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	return s.sendTemplated(to, "Reinitialisation de votre mot de passe",
		"templates/password_reset.html",
		passwordResetData{ResetLink: resetLink, UserEmail: to, ExpiryHours: 1})
}

// SendTemporaryPassword mails an admin-issued temporary password. The account
// is flagged for forced change, so the password is only good for one login.
func (s *Service) SendTemporaryPassword(to, tempPassword string) error {
	return s.sendTemplated(to, "Votre mot de passe temporaire",
		"templates/temporary_password.html",
		temporaryPasswordData{TempPassword: tempPassword})
}

func (s *Service) sendTemplated(to, subject, templatePath string, data interface{}) error {
	tmpl, err := template.ParseFS(templateFS, templatePath)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	message := s.buildMessage(to, subject, body.String())
	if err := s.send(to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) buildMessage(to, subject, htmlBody string) []byte {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)

	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + htmlBody

	return []byte(message)
}

func (s *Service) send(to string, message []byte) error {
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	tlsConfig := &tls.Config{
		ServerName: s.smtpHost,
	}

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	// Port 587: plain dial, then STARTTLS.
	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if err = conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = conn.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = conn.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return conn.Quit()
}
