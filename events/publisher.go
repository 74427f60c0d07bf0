package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/imkonsowa/menu-concierge/config"
	"github.com/nats-io/nats.go"
)

func ensureStream(js nats.JetStreamContext, cfg *config.Nats) error {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.CartSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("add stream %s: %w", cfg.Stream, err)
	}

	return nil
}

// Publisher publishes cart events to a JetStream stream.
type Publisher struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewPublisher(cfg *config.Nats) (*Publisher, error) {
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

	return &Publisher{conn: nc, js: js, subject: cfg.CartSubject}, nil
}

func (p *Publisher) PublishCart(ctx context.Context, event CartEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}

	_, err = p.js.Publish(p.subject, data, nats.Context(ctx))

	return err
}

func (p *Publisher) Close() {
	p.conn.Close()
}
