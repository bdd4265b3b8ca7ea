package notify

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/eventzon/eventzon/internal/dto"
	"github.com/eventzon/eventzon/internal/models"
)

type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
	log      zerolog.Logger
}

func NewMailer(host, port, from, password string, log zerolog.Logger) *Mailer {
	return &Mailer{Host: host, Port: port, From: from, Password: password, log: log}
}

func (m *Mailer) SendBookingEmail(msg dto.BookingConfirmation) error {
	var subject, body string
	switch msg.Status {
	case models.BookingStatusPending:
		subject = fmt.Sprintf("Your booking %s is awaiting payment", msg.Reference)
		body = fmt.Sprintf(
			"Hi %s,\n\nWe reserved %d ticket(s) for %s on %s at %s.\nTotal due: %s.\nYour booking reference is %s. Complete payment to confirm your seats.",
			msg.AttendeeName, msg.Quantity, msg.EventTitle, msg.EventDate, msg.Venue, msg.TotalAmount, msg.Reference,
		)
	default:
		subject = fmt.Sprintf("Your booking %s is confirmed", msg.Reference)
		body = fmt.Sprintf(
			"Hi %s,\n\nYou are booked: %d ticket(s) for %s on %s at %s.\nTotal paid: %s.\nYour booking reference is %s. Show the QR code from your account at the entrance.",
			msg.AttendeeName, msg.Quantity, msg.EventTitle, msg.EventDate, msg.Venue, msg.TotalAmount, msg.Reference,
		)
	}

	mail := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.From, msg.AttendeeEmail, subject, body)

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(addr, auth, m.From, []string{msg.AttendeeEmail}, []byte(mail)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().
		Str("to", msg.AttendeeEmail).
		Str("reference", msg.Reference).
		Msg("booking email sent")
	return nil
}
