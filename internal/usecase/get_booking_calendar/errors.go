package get_booking_calendar

import "errors"

var (
	// ErrInvalidMonth возвращается при некорректном формате месяца
	ErrInvalidMonth = errors.New("get_booking_calendar: invalid month, expected YYYY-MM")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_calendar: internal error")
)
