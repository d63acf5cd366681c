package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/metrics"

	"github.com/resend/resend-go/v2"
)

type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, email Email) error {
	const op = "notify.ResendSender.Send"

	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ContactNotifier e-mails the team about a new contact submission.
type ContactNotifier struct {
	log    *slog.Logger
	sender EmailSender
	from   string
	to     string
}

// NewContactNotifier returns a notifier that skips sending when sender is nil
// or no recipient is configured.
func NewContactNotifier(log *slog.Logger, sender EmailSender, from, to string) *ContactNotifier {
	return &ContactNotifier{
		log:    log,
		sender: sender,
		from:   from,
		to:     to,
	}
}

func (n *ContactNotifier) NotifyContact(ctx context.Context, contact models.ContactSubmission) error {
	const op = "notify.ContactNotifier.NotifyContact"
	log := n.log.With(
		slog.String("op", op),
		slog.String("contact_id", contact.ID.String()),
	)

	if n.sender == nil || n.to == "" {
		metrics.EmailNotificationsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		log.Debug("e-mail notifications not configured, skipping")
		return nil
	}

	email, err := ContactEmail(contact, n.from, n.to)
	if err != nil {
		metrics.EmailNotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := n.sender.Send(ctx, email); err != nil {
		metrics.EmailNotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error("failed to send contact notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.EmailNotificationsTotal.WithLabelValues(metrics.ResultSent).Inc()
	log.Info("contact notification sent")

	return nil
}

const notProvided = "Not provided"

type contactEmailData struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	CompanyType string
	Message     string
	SubmittedAt string
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #0E7490 0%, #155E75 100%); padding: 30px; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">New Contact Form Submission</h1>
    <p style="color: #BAE6FD; margin: 10px 0 0 0;">PsyTech Website</p>
  </div>
  <div style="background: #f8fafc; padding: 30px; border: 1px solid #e2e8f0; border-top: none; border-radius: 0 0 10px 10px;">
    <h2 style="color: #0f172a; font-size: 18px; margin-top: 0;">Contact Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 10px 0; color: #64748b; width: 140px;"><strong>Name:</strong></td><td style="padding: 10px 0; color: #0f172a;">{{.Name}}</td></tr>
      <tr><td style="padding: 10px 0; color: #64748b;"><strong>Email:</strong></td><td style="padding: 10px 0;"><a href="mailto:{{.Email}}" style="color: #0E7490;">{{.Email}}</a></td></tr>
      <tr><td style="padding: 10px 0; color: #64748b;"><strong>Phone:</strong></td><td style="padding: 10px 0; color: #0f172a;">{{.Phone}}</td></tr>
      <tr><td style="padding: 10px 0; color: #64748b;"><strong>Company:</strong></td><td style="padding: 10px 0; color: #0f172a;">{{.Company}}</td></tr>
      <tr><td style="padding: 10px 0; color: #64748b;"><strong>Organization Type:</strong></td><td style="padding: 10px 0; color: #0f172a;">{{.CompanyType}}</td></tr>
    </table>
    <h2 style="color: #0f172a; font-size: 18px; margin-top: 25px;">Message</h2>
    <div style="background: white; padding: 15px; border-radius: 8px; border: 1px solid #e2e8f0;">
      <p style="color: #334155; margin: 0; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
    </div>
    <p style="color: #94a3b8; font-size: 12px; margin-top: 25px; text-align: center;">Submitted on {{.SubmittedAt}}</p>
  </div>
</div>`))

// ContactEmail renders the notification for contact. Submitter fields are
// HTML-escaped.
func ContactEmail(contact models.ContactSubmission, from, to string) (Email, error) {
	label := models.CompanyTypeLabel(contact.CompanyType)

	data := contactEmailData{
		Name:        contact.Name,
		Email:       contact.Email,
		Phone:       valueOr(contact.Phone, notProvided),
		Company:     valueOr(contact.Company, notProvided),
		CompanyType: label,
		Message:     contact.Message,
		SubmittedAt: contact.CreatedAt.UTC().Format("January 02, 2006 at 15:04 UTC"),
	}

	var buf bytes.Buffer
	if err := contactEmailTemplate.Execute(&buf, data); err != nil {
		return Email{}, err
	}

	return Email{
		From:    from,
		To:      []string{to},
		Subject: fmt.Sprintf("New PsyTech Inquiry from %s (%s)", contact.Name, label),
		HTML:    buf.String(),
	}, nil
}

func valueOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

