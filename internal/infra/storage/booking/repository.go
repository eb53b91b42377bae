package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CateringService/pkg/psqlbuilder"
)

const (
	tableBookings      = "bookings"
	tableStatusHistory = "booking_status_history"
)

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"location_id",
	"guest_count",
	"status",
	"payment_status",
	"order_date",
	"delivery_date",
	"delivery_address",
	"subtotal",
	"delivery_fee",
	"total",
	"deposit_amount",
	"notes",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"location_id",
			"guest_count",
			"status",
			"payment_status",
			"order_date",
			"delivery_date",
			"delivery_address",
			"subtotal",
			"delivery_fee",
			"total",
			"deposit_amount",
			"notes",
		).
		Values(
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.LocationID,
			booking.GuestCount,
			booking.Status,
			booking.PaymentStatus,
			booking.OrderDate,
			booking.DeliveryDate,
			booking.DeliveryAddress,
			booking.Pricing.Subtotal,
			booking.Pricing.DeliveryFee,
			booking.Pricing.Total,
			booking.DepositAmount,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией
// Порядок не гарантируется: сортировка выполняется на уровне usecase
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func buildListQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.PaymentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}

	if filter.Search != nil {
		pattern := "%" + escapeLike(*filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"customer_email": pattern},
		})
	}

	if filter.DeliveryFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"delivery_date": *filter.DeliveryFrom})
	}
	if filter.DeliveryTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"delivery_date": *filter.DeliveryTo})
	}

	return selectBuilder.OrderBy("id ASC")
}

// likeEscaper экранирует спецсимволы LIKE (в PostgreSQL escape-символ по умолчанию \)
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.updateField(ctx, "UpdateStatus", id, "status", status)
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.updateField(ctx, "UpdatePaymentStatus", id, "payment_status", status)
}

func (r *Repository) updateField(ctx context.Context, op string, id int64, column string, value interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AddStatusChange добавляет запись в историю изменений статусов
func (r *Repository) AddStatusChange(ctx context.Context, change domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableStatusHistory).
		Columns("booking_id", "user_id", "field", "old_value", "new_value", "changed_at").
		Values(change.BookingID, change.UserID, change.Field, change.OldValue, change.NewValue, change.ChangedAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddStatusChange - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddStatusChange - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// scanBooking сканирует одну строку в domain.Booking
// NULL в order_date/delivery_date превращается в нулевое время
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var orderDate, deliveryDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.LocationID,
		&booking.GuestCount,
		&booking.Status,
		&booking.PaymentStatus,
		&orderDate,
		&deliveryDate,
		&booking.DeliveryAddress,
		&booking.Pricing.Subtotal,
		&booking.Pricing.DeliveryFee,
		&booking.Pricing.Total,
		&booking.DepositAmount,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.OrderDate = orderDate.Time
	booking.DeliveryDate = deliveryDate.Time
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.ApplyDefaults()

	return &booking, nil
}
