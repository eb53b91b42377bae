package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	statsCache "github.com/m04kA/SMC-CateringService/internal/infra/cache/stats"
	bookingRepo "github.com/m04kA/SMC-CateringService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CateringService/internal/service/dashboard/models"
)

// Результаты обращения к кешу для метрик
const (
	cacheHit      = "hit"
	cacheMiss     = "miss"
	cacheStale    = "stale"
	cacheError    = "error"
	cacheDisabled = "disabled"
)

// Service сервис статистики дашборда
type Service struct {
	repo         StatsRepository
	cache        StatsCache // опционально
	txManager    TransactionManager
	metrics      MetricsCollector // опционально
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	repo StatsRepository,
	cache StatsCache,
	txManager TransactionManager,
	metrics MetricsCollector,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetStats возвращает статистику, сначала из кеша, затем из БД
func (s *Service) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	now := s.timeProvider.Now().In(s.location)

	cached, version, result := s.fromCache(ctx, now)
	s.observe(result)
	if result == cacheHit {
		s.logger.Info("GetStats: served from cache, generatedAt=%s", cached.GeneratedAt.Format(time.RFC3339))
		return models.FromDomainStats(cached), nil
	}

	window := newStatsWindow(now)

	var stats *domain.DashboardStats
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.repo.GetStats(ctx, window)
		return err
	})
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}
	stats.GeneratedAt = now

	// При ошибке Redis версия неизвестна, сохранять нельзя
	if result == cacheMiss || result == cacheStale {
		if err := s.cache.Set(ctx, version, stats); err != nil {
			s.logger.Warn("GetStats: failed to store stats in cache: %v", err)
		}
	}

	s.logger.Info("GetStats: total=%d, today=%d, upcoming=%d", stats.TotalBookings, stats.TodayEvents, stats.UpcomingEvents)
	return models.FromDomainStats(stats), nil
}

// fromCache возвращает статистику из кеша, версию кеша и результат обращения.
// Статистика за другой день считается устаревшей
func (s *Service) fromCache(ctx context.Context, now time.Time) (*domain.DashboardStats, int64, string) {
	if s.cache == nil {
		return nil, 0, cacheDisabled
	}

	stats, version, err := s.cache.Get(ctx)
	switch {
	case err == nil:
		if !sameDay(stats.GeneratedAt.In(s.location), now) {
			return nil, version, cacheStale
		}
		return stats, version, cacheHit
	case errors.Is(err, statsCache.ErrCacheMiss):
		return nil, version, cacheMiss
	default:
		s.logger.Warn("GetStats: cache error, falling back to database: %v", err)
		return nil, version, cacheError
	}
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveStatsCache(result)
	}
}

// newStatsWindow считает границы "сегодня" и окна ближайших мероприятий
func newStatsWindow(now time.Time) bookingRepo.StatsWindow {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return bookingRepo.StatsWindow{
		DayStart:      dayStart,
		DayEnd:        dayStart.AddDate(0, 0, 1),
		UpcomingUntil: now.Add(domain.UpcomingWindow),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
