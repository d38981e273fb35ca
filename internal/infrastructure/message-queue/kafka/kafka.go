package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// EventPublisher writes storefront events to a single topic. A publisher
// without a broker address drops every event.
type EventPublisher struct {
	writer *kafka.Writer
}

func CreateEventPublisher(config *config.Config) *EventPublisher {
	if config.KafkaConfig.BrokerAddress == "" {
		log.Warn().Str("component", "CreateEventPublisher").Msg("BROKER_ADDRESS not set, events will not be published")
		return &EventPublisher{}
	}

	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
			Topic:        config.KafkaConfig.BrokerTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *EventPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	if p.writer == nil {
		return nil
	}

	msg, err := json.Marshal(dto.KafkaMessage{
		EventType:  eventType,
		OccurredAt: time.Now().Unix(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: msg,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", eventType).Msg("")
		return err
	}

	return nil
}

func (p *EventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
