package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

const (
	keyDashboardStats = "catering:dashboard:stats"
	keyStatsVersion   = "catering:dashboard:stats:version"
)

var (
	// ErrCacheMiss возвращается, когда в кеше нет статистики
	ErrCacheMiss = errors.New("stats.cache: miss")

	// ErrCache возвращается при ошибках работы с Redis
	ErrCache = errors.New("stats.cache: redis error")
)

// Cache кеш статистики дашборда в Redis
// Статистика хранится под ключом текущей версии, Invalidate увеличивает версию.
// Запись, посчитанная до инвалидации, попадает под старый ключ и больше не читается.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кеш статистики
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// cachedStats JSON представление статистики в кеше
type cachedStats struct {
	TotalBookings     int            `json:"totalBookings"`
	ByStatus          map[string]int `json:"byStatus"`
	ByPaymentStatus   map[string]int `json:"byPaymentStatus"`
	TodayEvents       int            `json:"todayEvents"`
	UpcomingEvents    int            `json:"upcomingEvents"`
	Revenue           float64        `json:"revenue"`
	OutstandingAmount float64        `json:"outstandingAmount"`
	GeneratedAt       time.Time      `json:"generatedAt"`
}

// Get получает статистику из кеша вместе с текущей версией.
// Версию нужно передать в Set после подсчёта статистики
func (c *Cache) Get(ctx context.Context) (*domain.DashboardStats, int64, error) {
	version, err := c.client.Get(ctx, keyStatsVersion).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("%w: Get version: %v", ErrCache, err)
	}

	data, err := c.client.Get(ctx, statsKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, ErrCacheMiss
	}
	if err != nil {
		return nil, version, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	stats, err := decode(data)
	if err != nil {
		return nil, version, err
	}
	return stats, version, nil
}

// Set сохраняет статистику на ttl под ключом версии, полученной из Get
func (c *Cache) Set(ctx context.Context, version int64, stats *domain.DashboardStats) error {
	data, err := encode(stats)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, statsKey(version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate делает сохранённую статистику недоступной
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, keyStatsVersion).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

func statsKey(version int64) string {
	return fmt.Sprintf("%s:v%d", keyDashboardStats, version)
}

func encode(stats *domain.DashboardStats) ([]byte, error) {
	cs := cachedStats{
		TotalBookings:     stats.TotalBookings,
		ByStatus:          make(map[string]int, len(stats.ByStatus)),
		ByPaymentStatus:   make(map[string]int, len(stats.ByPaymentStatus)),
		TodayEvents:       stats.TodayEvents,
		UpcomingEvents:    stats.UpcomingEvents,
		Revenue:           stats.Revenue,
		OutstandingAmount: stats.OutstandingAmount,
		GeneratedAt:       stats.GeneratedAt,
	}
	for k, v := range stats.ByStatus {
		cs.ByStatus[string(k)] = v
	}
	for k, v := range stats.ByPaymentStatus {
		cs.ByPaymentStatus[string(k)] = v
	}

	data, err := json.Marshal(cs)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCache, err)
	}
	return data, nil
}

func decode(data []byte) (*domain.DashboardStats, error) {
	var cs cachedStats
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}

	stats := &domain.DashboardStats{
		TotalBookings:     cs.TotalBookings,
		ByStatus:          make(map[domain.BookingStatus]int, len(cs.ByStatus)),
		ByPaymentStatus:   make(map[domain.PaymentStatus]int, len(cs.ByPaymentStatus)),
		TodayEvents:       cs.TodayEvents,
		UpcomingEvents:    cs.UpcomingEvents,
		Revenue:           cs.Revenue,
		OutstandingAmount: cs.OutstandingAmount,
		GeneratedAt:       cs.GeneratedAt,
	}
	for k, v := range cs.ByStatus {
		stats.ByStatus[domain.BookingStatus(k)] = v
	}
	for k, v := range cs.ByPaymentStatus {
		stats.ByPaymentStatus[domain.PaymentStatus(k)] = v
	}

	return stats, nil
}
