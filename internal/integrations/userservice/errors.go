package userservice

import "errors"

var (
	// ErrSessionNotFound возвращается, когда токен сессии неизвестен или истёк
	ErrSessionNotFound = errors.New("userservice client: session not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
