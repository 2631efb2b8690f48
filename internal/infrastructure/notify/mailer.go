// Package notify delivers the registration workflow's emails. The SMTP
// mailer implements ports.NotificationSender; the Dispatcher wraps it so
// registration requests never wait on an SMTP round-trip.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// MailerConfig captures SMTP transport settings and the fixed administrator
// address that receives activation requests.
type MailerConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// Mailer sends registration notifications over SMTP.
type Mailer struct {
	client *mail.Client
	cfg    MailerConfig
	log    zerolog.Logger
}

func NewMailer(cfg MailerConfig, log zerolog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, cfg: cfg, log: log}, nil
}

// SendActivationRequest mails the administrator the activation link for a
// pending registration.
func (m *Mailer) SendActivationRequest(ctx context.Context, userEmail, userName, activationURL string) error {
	subject := "New registration request – Asksource Admin Dashboard"
	body := activationRequestBody(userName, userEmail, activationURL, time.Now().UTC())
	return m.send(ctx, m.cfg.AdminEmail, subject, body)
}

// SendRegistrationConfirmation tells the registrant the request is pending
// review.
func (m *Mailer) SendRegistrationConfirmation(ctx context.Context, userEmail, userName string) error {
	subject := "Registration received – Asksource Admin Dashboard"
	body := confirmationBody(userName)
	return m.send(ctx, userEmail, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func activationRequestBody(userName, userEmail, activationURL string, requestedAt time.Time) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New registration request</h1>
  <p>Asksource Admin Dashboard</p>
  <p><strong>Name:</strong> %s<br>
     <strong>Email:</strong> %s<br>
     <strong>Requested:</strong> %s</p>
  <p><a href="%s" style="background: #667eea; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Activate account</a></p>
  <p>Clicking the button activates the account and allows this user to sign in.</p>
</div>`, userName, userEmail, requestedAt.Format("2006-01-02 15:04 UTC"), activationURL)
}

func confirmationBody(userName string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Thank you, %s</h1>
  <p>Your registration request for the Asksource Admin Dashboard has been received
     and is <strong>pending review</strong>.</p>
  <p>An administrator will examine your request; you will be able to sign in once
     your account has been activated. Review usually takes between a few minutes
     and a few hours.</p>
</div>`, userName)
}
