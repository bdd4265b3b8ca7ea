package notify

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Rabbit is a thin wrapper over one AMQP connection/channel pair with a
// durable direct exchange bound to a single queue.
type Rabbit struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	log      zerolog.Logger
}

func NewRabbit(url, exchange, queue string, log zerolog.Logger) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if err := ch.QueueBind(queue, "", exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	log.Info().Str("exchange", exchange).Str("queue", queue).Msg("rabbitmq initialized")
	return &Rabbit{conn: conn, channel: ch, exchange: exchange, queue: queue, log: log}, nil
}

func (r *Rabbit) Close() {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
	r.log.Info().Msg("rabbitmq connection closed")
}

func (r *Rabbit) Publish(body []byte) error {
	return r.channel.Publish(r.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

// Consume feeds queued messages to handler. A handler error drops the
// message without requeueing so a poison message cannot loop forever.
func (r *Rabbit) Consume(handler func([]byte) error) error {
	deliveries, err := r.channel.Consume(r.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for d := range deliveries {
			if err := handler(d.Body); err != nil {
				r.log.Warn().Err(err).Msg("failed to process message")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}()

	r.log.Info().Str("queue", r.queue).Msg("consuming notifications")
	return nil
}
