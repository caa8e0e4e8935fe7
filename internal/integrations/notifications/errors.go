package notifications

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("notifications: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("notifications: failed to publish event")
)
