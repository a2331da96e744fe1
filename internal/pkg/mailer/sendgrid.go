package mailer

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	key    string
	logger zerolog.Logger
}

var _ Mailer = (*SendgridMailer)(nil)

// NewSendgridMailer creates a SendGrid-backed Mailer.
func NewSendgridMailer(apiKey string, logger zerolog.Logger) *SendgridMailer {
	return &SendgridMailer{key: apiKey, logger: logger}
}

// Send delivers the message through the SendGrid API.
func (s *SendgridMailer) Send(msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(msg.FromName, msg.FromEmail))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("Failed to send email via SendGrid")
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		s.logger.Error().
			Int("status", res.StatusCode).
			Str("body", res.Body).
			Msg("SendGrid rejected email")
		return fmt.Errorf("failed to send email: sendgrid returned status %d", res.StatusCode)
	}
	return nil
}
