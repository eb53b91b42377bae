package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CateringService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CateringService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	statsCache   StatsCache     // опционально
	publisher    EventPublisher // опционально
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// statsCache и publisher могут быть nil, если Redis / RabbitMQ отключены
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	statsCache StatsCache,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		statsCache:   statsCache,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус заказа
// Блокировка строки, обновление и запись в историю выполняются в одной транзакции
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, status=%s, user=%d", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		updated   *domain.Booking
		oldStatus domain.BookingStatus
		changed   bool
	)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		oldStatus = booking.Status
		if oldStatus == newStatus {
			updated = booking
			return nil
		}

		if !booking.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			return s.mapRepoError("UpdateStatus", err)
		}

		now := s.timeProvider.Now()
		change := domain.StatusChange{
			BookingID: bookingID,
			UserID:    req.UserID,
			Field:     domain.FieldStatus,
			OldValue:  string(oldStatus),
			NewValue:  string(newStatus),
			ChangedAt: now,
		}
		if err := s.bookingRepo.AddStatusChange(ctx, change); err != nil {
			return fmt.Errorf("%w: UpdateStatus - failed to save history: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		booking.UpdatedAt = now
		updated = booking
		changed = true
		return nil
	})
	if err != nil {
		s.logError("UpdateStatus", bookingID, err)
		return nil, err
	}

	if changed {
		s.afterChange(ctx, events.BookingEvent{
			Type:       events.TypeStatusChanged,
			BookingID:  bookingID,
			UserID:     req.UserID,
			OldValue:   string(oldStatus),
			NewValue:   string(newStatus),
			OccurredAt: updated.UpdatedAt,
		})
	}

	s.logger.Info("UpdateStatus: booking id=%d status %s -> %s", bookingID, oldStatus, newStatus)
	return models.FromDomainBooking(updated), nil
}

// UpdatePaymentStatus меняет статус оплаты заказа
// Отметка о депозите допустима только для заказа с ненулевой суммой депозита
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePaymentStatus: booking id=%d, paymentStatus=%s, user=%d", bookingID, req.PaymentStatus, req.UserID)

	newStatus, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("UpdatePaymentStatus: invalid paymentStatus=%s for booking id=%d", req.PaymentStatus, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		updated   *domain.Booking
		oldStatus domain.PaymentStatus
		changed   bool
	)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getForUpdate(ctx, "UpdatePaymentStatus", bookingID)
		if err != nil {
			return err
		}

		oldStatus = booking.PaymentStatus
		if oldStatus == newStatus {
			updated = booking
			return nil
		}

		if newStatus == domain.PaymentDepositPaid && booking.DepositAmount <= 0 {
			return ErrDepositRequired
		}

		if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, newStatus); err != nil {
			return s.mapRepoError("UpdatePaymentStatus", err)
		}

		now := s.timeProvider.Now()
		change := domain.StatusChange{
			BookingID: bookingID,
			UserID:    req.UserID,
			Field:     domain.FieldPaymentStatus,
			OldValue:  string(oldStatus),
			NewValue:  string(newStatus),
			ChangedAt: now,
		}
		if err := s.bookingRepo.AddStatusChange(ctx, change); err != nil {
			return fmt.Errorf("%w: UpdatePaymentStatus - failed to save history: %v", ErrInternal, err)
		}

		booking.PaymentStatus = newStatus
		booking.UpdatedAt = now
		updated = booking
		changed = true
		return nil
	})
	if err != nil {
		s.logError("UpdatePaymentStatus", bookingID, err)
		return nil, err
	}

	if changed {
		s.afterChange(ctx, events.BookingEvent{
			Type:       events.TypePaymentStatusChanged,
			BookingID:  bookingID,
			UserID:     req.UserID,
			OldValue:   string(oldStatus),
			NewValue:   string(newStatus),
			OccurredAt: updated.UpdatedAt,
		})
	}

	s.logger.Info("UpdatePaymentStatus: booking id=%d payment %s -> %s", bookingID, oldStatus, newStatus)
	return models.FromDomainBooking(updated), nil
}

// getForUpdate читает заказ внутри транзакции (репозиторий добавляет FOR UPDATE)
func (s *Service) getForUpdate(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapRepoError(op, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) logError(op string, bookingID int64, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrDepositRequired):
		s.logger.Warn("%s: booking id=%d rejected: %v", op, bookingID, err)
	default:
		s.logger.Error("%s: booking id=%d failed: %v", op, bookingID, err)
	}
}

// afterChange сбрасывает кеш статистики и публикует событие
// Ошибки только логируются: изменение уже зафиксировано в БД
func (s *Service) afterChange(ctx context.Context, event events.BookingEvent) {
	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx); err != nil {
			s.logger.Warn("afterChange: failed to invalidate stats cache: %v", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("afterChange: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
		}
	}
}
