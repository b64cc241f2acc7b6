package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/codeedexprojects/poky-backend/internal/config"
)

// Mailer delivers one-time codes out-of-band. A send failure is surfaced to
// the caller as a hard stop; no retry is attempted here.
type Mailer interface {
	SendOTPEmail(to, code, displayName string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendOTPEmail(to, code, displayName string) error {
	if displayName == "" {
		displayName = "User"
	}
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; text-align: center;">OTP Verification</h2>
  <p>Hello %s,</p>
  <p>Your OTP verification code is:</p>
  <div style="background-color: #f4f4f4; padding: 15px; text-align: center; margin: 20px 0;">
    <h1 style="color: #333; margin: 0; font-size: 32px; letter-spacing: 5px;">%s</h1>
  </div>
  <p>This OTP is valid for 5 minutes. Please do not share this code with anyone.</p>
  <p>If you didn't request this OTP, please ignore this email.</p>
</div>`, displayName, code)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.from, to, "Your OTP Verification Code", body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
