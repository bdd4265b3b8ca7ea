package notify

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/eventzon/eventzon/internal/dto"
)

// Worker drains the notification queue and sends booking emails. A failed
// send only loses the email; the booking itself was committed long before.
type Worker struct {
	rabbit *Rabbit
	mailer *Mailer
	log    zerolog.Logger
}

func NewWorker(rabbit *Rabbit, mailer *Mailer, log zerolog.Logger) *Worker {
	return &Worker{rabbit: rabbit, mailer: mailer, log: log}
}

func (w *Worker) Start() error {
	return w.rabbit.Consume(func(body []byte) error {
		var msg dto.BookingConfirmation
		if err := json.Unmarshal(body, &msg); err != nil {
			// Malformed payloads are dropped, not retried.
			w.log.Error().Err(err).Msg("dropping malformed notification")
			return nil
		}
		return w.mailer.SendBookingEmail(msg)
	})
}
