// Package mailer provides outbound email delivery with interchangeable
// transports (SMTP, SendGrid, console).
package mailer

import (
	"fmt"
)

// Message is a single outbound email.
type Message struct {
	FromName  string // display name of the sender
	FromEmail string // sender address, used in the From header
	To        string
	Subject   string
	Body      string
}

// FromHeader renders the sender header as "{display_name} <{account_email}>".
func (m Message) FromHeader() string {
	return fmt.Sprintf("%s <%s>", m.FromName, m.FromEmail)
}

// Mailer sends email through an external transport. Dispatch is synchronous
// and blocking within the request; there is no retry policy.
type Mailer interface {
	Send(msg Message) error
}
