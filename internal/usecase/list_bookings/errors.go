package list_bookings

import "errors"

var (
	// ErrInvalidSortMode возвращается при неизвестном режиме сортировки
	ErrInvalidSortMode = errors.New("list_bookings: invalid sort mode")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_bookings: internal error")
)
