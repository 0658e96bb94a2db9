package config

import "errors"

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig некорректное значение в конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)
