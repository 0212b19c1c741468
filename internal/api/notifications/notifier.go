package notifications

import (
	"fmt"

	"arfcoder-backend/config"
	"arfcoder-backend/internal/domain/notifications"

	"github.com/resend/resend-go/v2"
	"gorm.io/gorm"
)

// Notify appends one in-app notification row. Callers treat the result as
// best-effort; a failure here must never alter order or license state.
func Notify(db *gorm.DB, userID uint, pesan string, tipe string) error {
	n := notifications.Notification{
		UserID: userID,
		Pesan:  pesan,
		Tipe:   tipe,
	}
	if err := db.Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// SendEmail delivers a mail through Resend. With no API key configured the
// send is skipped, which keeps tests and local runs offline.
func SendEmail(to string, subject string, html string) error {
	if config.RESEND_API_KEY == "" {
		fmt.Printf("📭 RESEND_API_KEY not set, skipping email to %s (%s)\n", to, subject)
		return nil
	}

	client := resend.NewClient(config.RESEND_API_KEY)
	_, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    config.MAIL_FROM,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
