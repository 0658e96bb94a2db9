package events

import "errors"

var (
	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrEncode ошибка сериализации события
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish ошибка публикации события
	ErrPublish = errors.New("events: failed to publish event")
)
