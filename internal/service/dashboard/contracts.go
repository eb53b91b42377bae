package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CateringService/internal/infra/storage/booking"
)

// StatsRepository интерфейс источника агрегированной статистики
type StatsRepository interface {
	GetStats(ctx context.Context, window bookingRepo.StatsWindow) (*domain.DashboardStats, error)
}

// StatsCache версионированный кеш статистики
// Get возвращает версию кеша, Set сохраняет статистику под этой версией
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, int64, error)
	Set(ctx context.Context, version int64, stats *domain.DashboardStats) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector сбор метрик обращения к кешу
type MetricsCollector interface {
	ObserveStatsCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
