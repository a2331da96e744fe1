package mailer

import (
	"sync"

	"github.com/rs/zerolog"
)

// ConsoleMailer logs messages instead of delivering them and keeps the sent
// messages in memory. Used in development and in tests.
type ConsoleMailer struct {
	mu     sync.Mutex
	sent   []Message
	logger zerolog.Logger
}

var _ Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a console-backed Mailer.
func NewConsoleMailer(logger zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

// Send logs the message and records it.
func (c *ConsoleMailer) Send(msg Message) error {
	c.logger.Info().
		Str("from", msg.FromHeader()).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("Email (console transport)")

	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
	return nil
}

// SentMessages returns a copy of all messages sent so far.
func (c *ConsoleMailer) SentMessages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}
