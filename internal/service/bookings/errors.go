package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается, когда статус нельзя сменить на запрошенный
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDepositRequired возвращается при отметке депозита у заказа без суммы депозита
	ErrDepositRequired = errors.New("booking has no deposit amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
