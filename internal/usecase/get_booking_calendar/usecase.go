package get_booking_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// UseCase use case для получения календаря заказов на месяц
type UseCase struct {
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.location)

	// 1. Определяем месяц
	monthStart, err := parseMonth(req.Month, now)
	if err != nil {
		uc.logger.Warn("GetBookingCalendar: %v", err)
		return nil, err
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	uc.logger.Info("GetBookingCalendar: month=%s", monthStart.Format(domain.MonthFormat))

	// 2. Получаем заказы с мероприятием в этом месяце
	filter := domain.BookingsFilter{
		DeliveryFrom: &monthStart,
		DeliveryTo:   &monthEnd,
	}

	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetBookingCalendar: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 3. Раскладываем по дням
	days := buildDays(monthStart, bookings)

	total := 0
	for _, d := range days {
		total += len(d.Bookings)
	}

	uc.logger.Info("GetBookingCalendar: month=%s, bookings=%d", monthStart.Format(domain.MonthFormat), total)

	return &Response{
		Month: monthStart,
		Days:  days,
		Total: total,
	}, nil
}
