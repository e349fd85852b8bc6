package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// SendGridSender implements the Sender interface using the SendGrid API.
type SendGridSender struct {
	apiKey string
}

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey}
}

// Send sends an email via SendGrid. SendGrid does not return a message id in
// the response body; the X-Message-Id header value is returned when present.
func (s *SendGridSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrInvalidToAddress
	}

	from := mail.NewEmail("", email.From)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = email.Subject

	personalization := mail.NewPersonalization()
	for _, to := range email.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(personalization)

	if email.TextBody != "" {
		message.AddContent(mail.NewContent("text/plain", email.TextBody))
	}
	if email.HTMLBody != "" {
		message.AddContent(mail.NewContent("text/html", email.HTMLBody))
	}

	for _, att := range email.Attachments {
		a := mail.NewAttachment()
		a.SetFilename(att.Filename)
		a.SetType(att.ContentType)
		a.SetContent(encodeBase64(att.Content))
		message.AddAttachment(a)
	}

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	if ids, ok := response.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		return ids[0], nil
	}
	return strconv.Itoa(response.StatusCode), nil
}

// SendTemplate sends an email using a SendGrid dynamic template.
func (s *SendGridSender) SendTemplate(ctx context.Context, templateID string, to []string, data map[string]interface{}) (string, error) {
	if len(to) == 0 {
		return "", ErrInvalidToAddress
	}

	message := mail.NewV3Mail()
	message.SetTemplateID(templateID)

	personalization := mail.NewPersonalization()
	for _, addr := range to {
		personalization.AddTos(mail.NewEmail("", addr))
	}
	for key, value := range data {
		personalization.SetDynamicTemplateData(key, value)
	}
	message.AddPersonalizations(personalization)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send template email: %w", err)
	}

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}

	if ids, ok := response.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		return ids[0], nil
	}
	return strconv.Itoa(response.StatusCode), nil
}
