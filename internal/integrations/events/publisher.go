package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Publisher публикует события о записанных бронированиях в Kafka
// Ключ сообщения - пул, чтобы события одного пула шли в одну партицию
type Publisher struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
	metrics Metrics
	log     Logger
}

// NewKafkaWriter создает writer с балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string, timeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: timeout,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewPublisher создает новый экземпляр публикатора
func NewPublisher(writer MessageWriter, topic string, timeout time.Duration, metrics Metrics, log Logger) *Publisher {
	return &Publisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// PublishCommitted отправляет событие о записанном бронировании
func (p *Publisher) PublishCommitted(ctx context.Context, r *domain.Reservation, verdict *domain.AdmissionVerdict) error {
	event := NewReservationCommitted(r, verdict)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(r.PoolID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(EventTypeReservationCommitted)},
		},
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.writer.WriteMessages(ctx, msg)
	if p.metrics != nil {
		p.metrics.ObserveEvent(p.topic, err)
	}
	if err != nil {
		return fmt.Errorf("%w: reservation_id=%d: %v", ErrPublish, r.ID, err)
	}

	return nil
}

// PublishCommittedBestEffort публикует событие без ошибки для вызывающего
// Бронирование уже записано, поэтому сбой брокера только логируется
func (p *Publisher) PublishCommittedBestEffort(ctx context.Context, r *domain.Reservation, verdict *domain.AdmissionVerdict) {
	if err := p.PublishCommitted(ctx, r, verdict); err != nil {
		p.log.Error("Failed to publish committed event for reservation_id=%d: %v", r.ID, err)
		return
	}
	p.log.Info("Published committed event for reservation_id=%d, pool_id=%d", r.ID, r.PoolID)
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NewReservationCommitted собирает событие из записанного бронирования
func NewReservationCommitted(r *domain.Reservation, verdict *domain.AdmissionVerdict) ReservationCommitted {
	event := ReservationCommitted{
		EventID:         uuid.NewString(),
		ReservationID:   r.ID,
		Style:           string(r.Style),
		PoolID:          r.PoolID,
		ResourceID:      r.ResourceID,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Date:            r.Date.Format(domain.DateFormat),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		RequesterID:     r.RequesterID,
		CommittedAt:     r.CreatedAt,
	}
	if !r.TimeOfDay.IsZero() {
		event.TimeOfDay = ptr.Ptr(r.TimeOfDay.String())
	}
	if verdict != nil {
		event.PreferenceDropped = verdict.PreferenceDropped
	}
	return event
}
