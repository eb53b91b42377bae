package domain

import "time"

// BookingStatus статус выполнения заказа
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPreparing BookingStatus = "preparing"
	StatusReady     BookingStatus = "ready"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты заказа
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
)

// Pricing расчёт стоимости заказа
type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

// Booking кейтеринговый заказ, привязанный к дате мероприятия (доставки)
// OrderDate и DeliveryDate независимы: дата мероприятия может быть в прошлом, сегодня или в будущем
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	LocationID    *int64
	GuestCount    int

	Status        BookingStatus
	PaymentStatus PaymentStatus

	OrderDate       time.Time // момент оформления заказа
	DeliveryDate    time.Time // момент мероприятия / доставки
	DeliveryAddress *string

	Pricing       Pricing
	DepositAmount float64
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking создает бронирование со статусами по умолчанию
func NewBooking() *Booking {
	return &Booking{
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}
}

// ApplyDefaults проставляет статусы по умолчанию вместо пустых значений
func (b *Booking) ApplyDefaults() {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
}

// IsFullyCompleted заказ выполнен и полностью оплачен
func (b *Booking) IsFullyCompleted() bool {
	return b.Status == StatusCompleted && b.PaymentStatus == PaymentFullyPaid
}

// IsCancelled заказ отменён
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HasValidDates даты заказа и мероприятия заполнены
// Нулевое время появляется при NULL или неразборчивом значении в хранилище
func (b *Booking) HasValidDates() bool {
	return !b.OrderDate.IsZero() && !b.DeliveryDate.IsZero()
}

// OutstandingAmount сумма, которую клиент ещё должен заплатить
func (b *Booking) OutstandingAmount() float64 {
	switch b.PaymentStatus {
	case PaymentFullyPaid:
		return 0
	case PaymentDepositPaid:
		rest := b.Pricing.Total - b.DepositAmount
		if rest < 0 {
			return 0
		}
		return rest
	default:
		return b.Pricing.Total
	}
}

// CanTransitionTo проверяет допустимость смены статуса
// Отменённый заказ нельзя вернуть в работу, остальные переходы разрешены
func (b *Booking) CanTransitionTo(status BookingStatus) bool {
	if b.IsCancelled() {
		return status == StatusCancelled
	}
	return true
}

// IsValid проверяет, что статус входит в допустимый набор
func (s BookingStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус оплаты входит в допустимый набор
func (s PaymentStatus) IsValid() bool {
	for _, valid := range AllPaymentStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	Status        *BookingStatus // опционально
	PaymentStatus *PaymentStatus // опционально
	Search        *string        // поиск по имени / email клиента
	DeliveryFrom  *time.Time     // начало периода мероприятия, включительно
	DeliveryTo    *time.Time     // конец периода мероприятия, не включительно
}

// StatusChange запись в истории изменения статусов
type StatusChange struct {
	BookingID int64
	UserID    int64
	Field     string // "status" или "payment_status"
	OldValue  string
	NewValue  string
	ChangedAt time.Time
}

// DashboardStats агрегированная статистика для дашборда
type DashboardStats struct {
	TotalBookings     int
	ByStatus          map[BookingStatus]int
	ByPaymentStatus   map[PaymentStatus]int
	TodayEvents       int
	UpcomingEvents    int // мероприятия в ближайшие 48 часов, не считая сегодняшних
	Revenue           float64
	OutstandingAmount float64
	GeneratedAt       time.Time
}
