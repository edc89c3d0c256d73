package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter запись сообщений в Kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Metrics учёт публикаций
type Metrics interface {
	ObserveEvent(topic string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
