package notifications

import "context"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher доставляет событие брокеру
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MetricsRecorder учитывает результат публикации
type MetricsRecorder interface {
	ObserveNotification(eventType, result string)
}
