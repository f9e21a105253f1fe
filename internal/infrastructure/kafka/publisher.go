package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/segmentio/kafka-go"
	"github.com/tourze/ganet-tracking-service/internal/domain"
)

const (
	clickTopic      = "tracking.clicks"
	conversionTopic = "tracking.conversions"

	writeTimeout = 10 * time.Second
)

// TrackingEventPublisher pushes click and conversion events to Kafka.
// Events are keyed by tag value so all events of one click land in the
// same partition.
type TrackingEventPublisher struct {
	writer     *kafka.Writer
	newEventID func() string
}

func NewTrackingEventPublisher(brokers []string) (*TrackingEventPublisher, error) {
	newEventID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("init event id generator: %w", err)
	}

	return &TrackingEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		newEventID: newEventID,
	}, nil
}

func (p *TrackingEventPublisher) PublishClick(event domain.ClickEvent) error {
	event.EventID = p.newEventID()
	return p.publish(clickTopic, event.Tag, event)
}

func (p *TrackingEventPublisher) PublishConversion(event domain.ConversionEvent) error {
	event.EventID = p.newEventID()
	return p.publish(conversionTopic, event.Tag, event)
}

func (p *TrackingEventPublisher) publish(topic, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *TrackingEventPublisher) Close() error {
	return p.writer.Close()
}
