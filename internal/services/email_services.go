package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EmailService relays contact-form queries and explicit messages through
// the configured sender.
type EmailService struct {
	Sender        EmailSender
	DestinationTo string
}

func NewEmailService(sender EmailSender, destinationTo string) *EmailService {
	return &EmailService{Sender: sender, DestinationTo: destinationTo}
}

type QueryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendQuery forwards a website contact-form submission to the configured
// destination address, with Reply-To pointing back at the submitter.
func (s *EmailService) SendQuery(ctx context.Context, q QueryRequest) error {
	if s.DestinationTo == "" {
		return errors.New("destination email is not configured")
	}
	name := q.Name
	if name == "" {
		name = "N/A"
	}
	email := q.Email
	if email == "" {
		email = "N/A"
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", name, email, q.Message)
	return s.Sender.Send(ctx, s.DestinationTo, q.Email, "New Query from Website", body)
}

// SendEmail relays an explicit message to the given recipient.
func (s *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("'to' is required")
	}
	return s.Sender.Send(ctx, to, "", subject, body)
}
