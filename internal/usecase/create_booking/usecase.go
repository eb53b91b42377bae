package create_booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/internal/infra/events"
)

// UseCase use case для создания заказа
type UseCase struct {
	bookingRepo  BookingRepository
	statsCache   StatsCache     // опционально
	publisher    EventPublisher // опционально
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	statsCache StatsCache,
	publisher EventPublisher,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		statsCache:   statsCache,
		publisher:    publisher,
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

// Execute выполняет use case создания заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, guests=%d, deliveryDate=%s",
		req.UserID, req.GuestCount, req.DeliveryDate.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Дата мероприятия не может быть в прошлом
	if err := validateDate(req.DeliveryDate, now); err != nil {
		uc.logger.Warn("CreateBooking: delivery date %s is in the past", req.DeliveryDate.Format(domain.DateFormat))
		return nil, err
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)

	// 4. Сохраняем заказ
	created, err := uc.bookingRepo.Create(ctx, req.toDomain(now))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d created, total=%.2f", created.ID, created.Pricing.Total)

	// 5. Сбрасываем статистику и публикуем событие
	if uc.statsCache != nil {
		if err := uc.statsCache.Invalidate(ctx); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate stats cache: %v", err)
		}
	}

	if uc.publisher != nil {
		event := events.BookingEvent{
			Type:       events.TypeCreated,
			BookingID:  created.ID,
			UserID:     req.UserID,
			NewValue:   string(created.Status),
			OccurredAt: now,
		}
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", created.ID, err)
		}
	}

	return &Response{Booking: created}, nil
}
