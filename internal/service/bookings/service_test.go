package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CateringService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CateringService/internal/service/bookings/models"
)

type fakeRepo struct {
	bookings  map[int64]*domain.Booking
	history   []domain.StatusChange
	getErr    error
	updateErr error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.bookings[id].Status = status
	return nil
}

func (r *fakeRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.bookings[id].PaymentStatus = status
	return nil
}

func (r *fakeRepo) AddStatusChange(_ context.Context, change domain.StatusChange) error {
	r.history = append(r.history, change)
	return nil
}

type fakeTx struct {
	calls int
}

func (t *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeCache struct {
	invalidated int
	err         error
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	return c.err
}

type fakePublisher struct {
	published []events.BookingEvent
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.published = append(p.published, event)
	return p.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func testBooking(id int64) *domain.Booking {
	b := domain.NewBooking()
	b.ID = id
	b.CustomerName = "Анна"
	b.GuestCount = 20
	b.OrderDate = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b.DeliveryDate = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	b.Pricing = domain.Pricing{Subtotal: 900, DeliveryFee: 100, Total: 1000}
	b.DepositAmount = 300
	return b
}

type testDeps struct {
	repo      *fakeRepo
	tx        *fakeTx
	cache     *fakeCache
	publisher *fakePublisher
}

func newTestService(bookings ...*domain.Booking) (*Service, *testDeps) {
	deps := &testDeps{
		repo:      newFakeRepo(bookings...),
		tx:        &fakeTx{},
		cache:     &fakeCache{},
		publisher: &fakePublisher{},
	}
	svc := NewService(deps.repo, deps.tx, deps.cache, deps.publisher, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
	return svc, deps
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newTestService(testBooking(1))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1000.0, resp.OutstandingAmount)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.getErr = errors.New("connection refused")

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, deps := newTestService(testBooking(1))

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, testNow, resp.UpdatedAt)
	assert.Equal(t, domain.StatusConfirmed, deps.repo.bookings[1].Status)
	assert.Equal(t, 1, deps.tx.calls)

	require.Len(t, deps.repo.history, 1)
	assert.Equal(t, domain.StatusChange{
		BookingID: 1,
		UserID:    7,
		Field:     domain.FieldStatus,
		OldValue:  "pending",
		NewValue:  "confirmed",
		ChangedAt: testNow,
	}, deps.repo.history[0])

	assert.Equal(t, 1, deps.cache.invalidated)
	require.Len(t, deps.publisher.published, 1)
	assert.Equal(t, events.TypeStatusChanged, deps.publisher.published[0].Type)
	assert.Equal(t, "confirmed", deps.publisher.published[0].NewValue)
}

func TestService_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc, deps := newTestService(testBooking(1))

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "pending"})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Empty(t, deps.repo.history)
	assert.Zero(t, deps.cache.invalidated)
	assert.Empty(t, deps.publisher.published)
}

func TestService_UpdateStatus_Errors(t *testing.T) {
	cancelled := testBooking(2)
	cancelled.Status = domain.StatusCancelled

	tests := []struct {
		name    string
		id      int64
		status  string
		wantErr error
	}{
		{name: "invalid status", id: 1, status: "archived", wantErr: ErrInvalidInput},
		{name: "not found", id: 99, status: "confirmed", wantErr: ErrBookingNotFound},
		{name: "cancelled cannot be reopened", id: 2, status: "confirmed", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(testBooking(1), cancelled)

			_, err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{UserID: 7, Status: tt.status})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, deps.repo.history)
			assert.Empty(t, deps.publisher.published)
		})
	}
}

func TestService_UpdateStatus_RepositoryError(t *testing.T) {
	svc, deps := newTestService(testBooking(1))
	deps.repo.updateErr = errors.New("deadlock detected")

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "ready"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, deps.cache.invalidated)
}

func TestService_UpdateStatus_SideEffectFailuresAreIgnored(t *testing.T) {
	svc, deps := newTestService(testBooking(1))
	deps.cache.err = errors.New("redis down")
	deps.publisher.err = errors.New("channel closed")

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "preparing"})
	require.NoError(t, err)
	assert.Equal(t, "preparing", resp.Status)
}

func TestService_UpdateStatus_WithoutOptionalDeps(t *testing.T) {
	repo := newFakeRepo(testBooking(1))
	svc := NewService(repo, &fakeTx{}, nil, nil, nopLogger{}).WithTimeProvider(fixedTime{now: testNow})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestService_UpdatePaymentStatus(t *testing.T) {
	svc, deps := newTestService(testBooking(1))

	resp, err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "deposit_paid"})
	require.NoError(t, err)

	assert.Equal(t, "deposit_paid", resp.PaymentStatus)
	assert.Equal(t, 700.0, resp.OutstandingAmount)

	require.Len(t, deps.repo.history, 1)
	assert.Equal(t, domain.FieldPaymentStatus, deps.repo.history[0].Field)
	assert.Equal(t, "pending", deps.repo.history[0].OldValue)

	require.Len(t, deps.publisher.published, 1)
	assert.Equal(t, events.TypePaymentStatusChanged, deps.publisher.published[0].Type)
	assert.Equal(t, 1, deps.cache.invalidated)
}

func TestService_UpdatePaymentStatus_DepositRequired(t *testing.T) {
	noDeposit := testBooking(1)
	noDeposit.DepositAmount = 0
	svc, deps := newTestService(noDeposit)

	_, err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "deposit_paid"})
	assert.ErrorIs(t, err, ErrDepositRequired)
	assert.Empty(t, deps.repo.history)

	resp, err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "fully_paid"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.OutstandingAmount)
}

func TestService_UpdatePaymentStatus_InvalidInput(t *testing.T) {
	svc, deps := newTestService(testBooking(1))

	_, err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, deps.tx.calls)
}
