package auth

import (
	"fmt"

	notifier "arfcoder-backend/internal/api/notifications"
	"arfcoder-backend/internal/domain/users"
)

// SendOTPEmail mails a one-time code. Subject and body wording follow the
// storefront's Indonesian copy.
func SendOTPEmail(to string, kode string, purpose string) error {
	var subject, intro, warning string

	switch purpose {
	case users.OTPPurposePasswordReset:
		subject = "Reset Password ArfCoder - Kode OTP"
		intro = "Gunakan kode OTP berikut untuk reset password Anda:"
		warning = "<p><strong>Jika Anda tidak meminta reset password, segera hubungi kami!</strong></p>"
	case users.OTPPurposeEmailVerification:
		subject = "Verifikasi Email ArfCoder - Kode OTP"
		intro = "Gunakan kode OTP berikut untuk memverifikasi email Anda:"
		warning = "<p>Jika Anda tidak meminta verifikasi ini, abaikan email ini.</p>"
	default:
		subject = "Kode Verifikasi ArfCoder"
		intro = "Kode verifikasi Anda:"
	}

	html := fmt.Sprintf(
		"<h2>ArfCoder</h2><p>%s</p><h1 style=\"letter-spacing:5px\">%s</h1><p>Kode ini akan kedaluwarsa dalam 15 menit.</p>%s",
		intro, kode, warning,
	)

	return notifier.SendEmail(to, subject, html)
}
