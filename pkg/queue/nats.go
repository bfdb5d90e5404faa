package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const natsMaxDeliver = 5

// NatsQueue implements Queue using NATS JetStream.
type NatsQueue struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	stream string
}

// ConnectNats connects to url and ensures the stream exists.
func ConnectNats(ctx context.Context, url, stream string) (*NatsQueue, error) {
	nc, err := nats.Connect(url, nats.Name("simple-notify"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     stream,
		Subjects: []string{"notify.>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("NATS connected", "url", url, "stream", stream)
	return &NatsQueue{nc: nc, js: js, stream: stream}, nil
}

// Publish sends data to subject.
func (q *NatsQueue) Publish(ctx context.Context, subject string, data []byte) error {
	if _, err := q.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Subscribe attaches a durable consumer for subject. Messages are acked when
// handler succeeds, terminated when it fails with ErrPermanent and nacked
// otherwise.
func (q *NatsQueue) Subscribe(ctx context.Context, subject string, handler Handler) (func(), error) {
	consumer, err := q.js.CreateOrUpdateConsumer(ctx, q.stream, jetstream.ConsumerConfig{
		Durable:       durableName(subject),
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    natsMaxDeliver,
	})
	if err != nil {
		return nil, fmt.Errorf("nats consumer create: %w", err)
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(ctx, msg.Subject(), msg.Data()); err != nil {
			if errors.Is(err, ErrPermanent) {
				slog.Error("Dropping message", "subject", msg.Subject(), "error", err)
				if termErr := msg.Term(); termErr != nil {
					slog.Error("NATS term failed", "error", termErr)
				}
				return
			}
			slog.Error("Message handler failed", "subject", msg.Subject(), "error", err)
			if nakErr := msg.Nak(); nakErr != nil {
				slog.Error("NATS nak failed", "error", nakErr)
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			slog.Error("NATS ack failed", "error", ackErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats consume: %w", err)
	}
	return cons.Stop, nil
}

// Close drains the connection.
func (q *NatsQueue) Close() error {
	return q.nc.Drain()
}

func durableName(subject string) string {
	return "notify-" + strings.NewReplacer(".", "-", "*", "any", ">", "all").Replace(subject)
}
