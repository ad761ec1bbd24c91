// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/config"
	"github.com/shopora/backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{db: db, config: config}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User, verificationToken string) error {
	data := map[string]interface{}{
		"Name":            user.FirstName,
		"VerificationURL": fmt.Sprintf("%s/verify-email/%s", s.config.Frontend.BaseURL, verificationToken),
		"PlatformName":    s.config.Email.FromName,
	}

	tmpl := s.getEmailTemplate("welcome")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	data := map[string]interface{}{
		"Name":         user.FirstName,
		"ResetURL":     fmt.Sprintf("%s/reset-password/%s", s.config.Frontend.BaseURL, resetToken),
		"PlatformName": s.config.Email.FromName,
	}

	tmpl := s.getEmailTemplate("password_reset")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendOrderConfirmation is fire-and-forget from checkout; failures are logged,
// never surfaced to the buyer.
func (s *NotificationService) SendOrderConfirmation(userID uuid.UUID, order *models.Order) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		logrus.WithError(err).Warn("order confirmation: user lookup failed")
		return
	}

	data := map[string]interface{}{
		"Name":         user.FirstName,
		"OrderID":      order.ID.String(),
		"TotalPrice":   fmt.Sprintf("%.2f", order.TotalPrice),
		"PlatformName": s.config.Email.FromName,
	}

	tmpl := s.getEmailTemplate("order_confirmation")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		logrus.WithError(err).Warn("order confirmation: template render failed")
		return
	}
	if err := s.sendEmail(user.Email, tmpl.Subject, body); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("order confirmation email failed")
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email delivery skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to Shopora",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Name}}!</h2>
	<p>Thank you for creating an account. Please verify your email address by clicking the link below:</p>
	<a href="{{.VerificationURL}}">Verify Email</a>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"password_reset": {
			Subject: "Password Reset Request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>We received a request to reset your password. This link is valid for 10 minutes:</p>
	<a href="{{.ResetURL}}">Reset Password</a>
	<p>If you did not request this, you can safely ignore this email.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"order_confirmation": {
			Subject: "Your Order Confirmation",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.Name}}!</h2>
	<p>Order <strong>{{.OrderID}}</strong> has been received and is being processed.</p>
	<p>Total: <strong>${{.TotalPrice}}</strong></p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
	}

	if tmpl, ok := templates[templateType]; ok {
		return tmpl
	}
	return EmailTemplate{Subject: "Notification", Body: "{{.Message}}"}
}
