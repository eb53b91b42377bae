package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата мероприятия уже прошла
	ErrInvalidDate = errors.New("create_booking: delivery date is in the past")

	// ErrInvalidAmount возвращается при некорректных суммах заказа
	ErrInvalidAmount = errors.New("create_booking: invalid amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
