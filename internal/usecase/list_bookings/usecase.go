package list_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CateringService/pkg/pagination"
)

// UseCase use case для получения отсортированного постраничного списка бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	metrics      MetricsCollector
	timeProvider TimeProvider
	location     *time.Location
	pageSize     int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс бизнеса, в нём определяется "сегодня"
func NewUseCase(
	bookingRepo BookingRepository,
	metrics MetricsCollector,
	location *time.Location,
	pageSize int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		pageSize:     pageSize,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListBookings: sort=%q, page=%d, pageSize=%d", req.Sort, req.Page, req.PageSize)

	// 1. Валидация входных данных
	mode, filter, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ListBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирования с фильтрами
	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ListBookings: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Сортируем относительно текущего времени в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.location)
	ranked := Rank(bookings, mode, now)

	malformed := 0
	for _, b := range ranked {
		if !b.HasValidDates() {
			malformed++
		}
	}
	if malformed > 0 {
		uc.logger.Warn("ListBookings: %d bookings have malformed dates and were placed last", malformed)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveRanking(string(mode), len(ranked))
	}

	// 4. Пагинация после сортировки
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = uc.pageSize
	}
	page := pagination.Paginate(ranked, req.Page, pageSize)

	uc.logger.Info("ListBookings: returned %d of %d bookings, sort=%s, page=%d",
		len(page.Items), page.Total, mode, page.Page)

	return &Response{
		Bookings: page.Items,
		Sort:     mode,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasNext:  page.HasNext,
		HasPrev:  page.HasPrev,
	}, nil
}
