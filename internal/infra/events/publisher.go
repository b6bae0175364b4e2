package events

import (
	"context"
	"encoding/json"
	"time"

	"orderhub/internal/domain/model"
	"orderhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent は Kafka に送る1件分
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// kafka.Writer の必要な部分だけ（テストで差し替える）
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ usecase.OrderEventPublisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
	now    func() time.Time
}

// 1件ずつ同期で送るのでバッチ待ちは短くする（既定は1秒）
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaPublisher(writer, topic, logger)
}

func newKafkaPublisher(w messageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{writer: w, topic: topic, logger: logger, now: time.Now}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order usecase.OrderOutput) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeOrderCreated, order, data)
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order usecase.OrderOutput, previous model.OrderStatus) error {
	payload := struct {
		Order          usecase.OrderOutput `json:"order"`
		PreviousStatus model.OrderStatus   `json:"previous_status"`
		NewStatus      model.OrderStatus   `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previous,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeOrderStatusChanged, order, data)
}

// 同じ注文のイベントは同じパーティションに入るよう key は注文ID
func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, order usecase.OrderOutput, data []byte) error {
	event := OrderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Data:      data,
		Timestamp: p.now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("order event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("order_id", event.OrderID),
		zap.String("topic", p.topic),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ブローカー未設定のとき用
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, usecase.OrderOutput) error { return nil }

func (NoopPublisher) PublishOrderStatusChanged(context.Context, usecase.OrderOutput, model.OrderStatus) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
