package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CateringService/pkg/psqlbuilder"
)

// StatsWindow временные границы для подсчёта статистики
type StatsWindow struct {
	DayStart      time.Time // начало сегодняшнего дня в часовом поясе бизнеса
	DayEnd        time.Time // начало завтрашнего дня
	UpcomingUntil time.Time // now + 48h
}

// GetStats считает агрегированную статистику по бронированиям
func (r *Repository) GetStats(ctx context.Context, window StatsWindow) (*domain.DashboardStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stats := &domain.DashboardStats{
		ByStatus:        make(map[domain.BookingStatus]int, len(domain.AllStatuses)),
		ByPaymentStatus: make(map[domain.PaymentStatus]int, len(domain.AllPaymentStatuses)),
	}

	query, args, err := buildTotalsQuery(window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build totals query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.TodayEvents,
		&stats.UpcomingEvents,
		&stats.Revenue,
		&stats.OutstandingAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan totals: %v", ErrScanRow, err)
	}

	byStatus, err := r.countGroupedBy(ctx, executor, "status")
	if err != nil {
		return nil, err
	}
	for k, v := range byStatus {
		stats.ByStatus[domain.BookingStatus(k)] = v
	}

	byPayment, err := r.countGroupedBy(ctx, executor, "payment_status")
	if err != nil {
		return nil, err
	}
	for k, v := range byPayment {
		stats.ByPaymentStatus[domain.PaymentStatus(k)] = v
	}

	return stats, nil
}

func buildTotalsQuery(window StatsWindow) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE delivery_date >= ? AND delivery_date < ? AND status <> ?)",
			window.DayStart, window.DayEnd, domain.StatusCancelled,
		)).
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE delivery_date >= ? AND delivery_date <= ? AND status <> ?)",
			window.DayEnd, window.UpcomingUntil, domain.StatusCancelled,
		)).
		Column(squirrel.Expr(
			"COALESCE(SUM(total) FILTER (WHERE payment_status = ?), 0)",
			domain.PaymentFullyPaid,
		)).
		Column(squirrel.Expr(
			"COALESCE(SUM(CASE WHEN payment_status = ? THEN total "+
				"WHEN payment_status = ? THEN GREATEST(total - deposit_amount, 0) "+
				"ELSE 0 END) FILTER (WHERE status <> ?), 0)",
			domain.PaymentPending, domain.PaymentDepositPaid, domain.StatusCancelled,
		)).
		From(tableBookings)
}

func (r *Repository) countGroupedBy(ctx context.Context, executor DBExecutor, column string) (map[string]int, error) {
	query, args, err := psqlbuilder.Select(column, "COUNT(*)").
		From(tableBookings).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build group query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - execute group query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStats - scan group row: %v", ErrScanRow, err)
		}
		result[key] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStats - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
