package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imkonsowa/menu-concierge/config"
	"github.com/nats-io/nats.go"
)

type natsDelivery struct {
	msg *nats.Msg
}

func (d natsDelivery) Payload() []byte { return d.msg.Data }
func (d natsDelivery) Ack() error      { return d.msg.Ack() }
func (d natsDelivery) Nak() error      { return d.msg.Nak() }

type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewSubscriber(cfg *config.Nats) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	if err := ensureStream(js, cfg); err != nil {
		nc.Close()
		return nil, err
	}

	return &Subscriber{conn: nc, js: js, subject: cfg.CartSubject}, nil
}

func (s *Subscriber) Close() {
	s.conn.Close()
}

// DurableName derives the consumer name for subject.
func DurableName(subject string) string {
	return strings.ReplaceAll(subject+".consumer", ".", "-")
}

// Run pulls cart events into pool until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context, pool *WorkerPool) error {
	subscription, err := s.js.PullSubscribe(s.subject, DurableName(s.subject), nats.ManualAck())
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.subject, err)
	}

	for {
		select {
		case <-ctx.Done():
			if err := subscription.Unsubscribe(); err != nil {
				slog.Warn("failed to unsubscribe from subject", "subject", s.subject, "error", err)
			}

			return nil
		default:
			msgs, err := subscription.Fetch(4, nats.MaxWait(200*time.Millisecond))
			if err != nil && !errors.Is(err, nats.ErrTimeout) && !errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("fetch cart events: %w", err)
			}

			for _, msg := range msgs {
				if !pool.Submit(ctx, natsDelivery{msg: msg}) {
					return nil
				}
			}
		}
	}
}
