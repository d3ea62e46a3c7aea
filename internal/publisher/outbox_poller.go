package publisher

import (
	"context"
	"log"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/orders"
	"github.com/segmentio/kafka-go"
)

// OutboxSource is the slice of the order store the poller needs.
type OutboxSource interface {
	GetUnpublishedEvents(ctx context.Context, limit int) ([]*orders.OutboxEvent, error)
	MarkEventPublished(ctx context.Context, id int64) error
}

// messageWriter matches *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPoller drains the order outbox into Kafka. Publication is at-least-
// once: an event is marked published only after the broker accepted it, so a
// crash between write and mark replays the event.
type OutboxPoller struct {
	tick      time.Duration
	batchSize int
	source    OutboxSource
	writer    messageWriter
}

func NewOutboxPoller(source OutboxSource, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "unibeez.orders",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:      time.Second,
		batchSize: 100,
		source:    source,
		writer:    w,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	defer p.writer.Close()

	for {
		select {
		case <-ticker.C:
			p.drain(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) drain(ctx context.Context) {
	events, err := p.source.GetUnpublishedEvents(ctx, p.batchSize)
	if err != nil {
		log.Printf("outbox: failed to fetch events: %v", err)
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			log.Printf("outbox: failed to publish event id=%d: %v", event.ID, err)
			continue
		}
		if err := p.source.MarkEventPublished(ctx, event.ID); err != nil {
			log.Printf("outbox: failed to mark event id=%d published: %v", event.ID, err)
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *orders.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id keeps per-order ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
