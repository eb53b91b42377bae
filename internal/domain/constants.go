package domain

import "time"

// Параметры приоритизации списка бронирований
const (
	// UpcomingWindow окно "ближайших" мероприятий
	UpcomingWindow = 48 * time.Hour
)

// Бизнес-ограничения при создании заказа
const (
	MaxCustomerNameLength    = 200
	MaxNotesLength           = 1000
	MaxDeliveryAddressLength = 500
	MaxGuestCount            = 10000
)

// Форматы дат
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Поля истории изменений
const (
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
)

// AllStatuses все допустимые статусы заказа
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

// AllPaymentStatuses все допустимые статусы оплаты
var AllPaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentDepositPaid,
	PaymentFullyPaid,
}
