package services

import (
	"context"
	"log"
)

type EmailSender interface {
	Send(ctx context.Context, to, replyTo, subject, body string) error
}

// LogSender is the development fallback when no SMTP account is
// configured: it logs the message instead of delivering it.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, replyTo, subject, body string) error {
	log.Printf("email (not sent): to=%s reply-to=%s subject=%q\n%s", to, replyTo, subject, body)
	return nil
}
