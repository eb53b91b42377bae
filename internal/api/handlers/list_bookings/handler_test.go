package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CateringService/internal/domain"
	listBookings "github.com/m04kA/SMC-CateringService/internal/usecase/list_bookings"
)

type fakeUseCase struct {
	req  *listBookings.Request
	resp *listBookings.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *listBookings.Request) (*listBookings.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	b := domain.NewBooking()
	b.ID = 3
	b.CustomerName = "Анна"
	b.OrderDate = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b.DeliveryDate = time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	uc := &fakeUseCase{resp: &listBookings.Response{
		Bookings: []*domain.Booking{b},
		Sort:     listBookings.SortLatest,
		Page:     2,
		PageSize: 10,
		Total:    11,
		HasPrev:  true,
	}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?sort=latest&page=2&status=confirmed&search=%20anna%20", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "latest", uc.req.Sort)
	assert.Equal(t, 2, uc.req.Page)
	assert.Zero(t, uc.req.PageSize)
	require.NotNil(t, uc.req.Status)
	assert.Equal(t, "confirmed", *uc.req.Status)
	assert.Nil(t, uc.req.PaymentStatus)
	require.NotNil(t, uc.req.Search)
	assert.Equal(t, "anna", *uc.req.Search)

	var body ListBookingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "latest", body.Sort)
	assert.Equal(t, 11, body.Total)
	assert.True(t, body.HasPrev)
	assert.False(t, body.HasNext)
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, int64(3), body.Bookings[0].ID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "bad page", query: "?page=abc", wantStatus: http.StatusBadRequest},
		{name: "bad sort", query: "?sort=alphabetical", err: fmt.Errorf("%w: alphabetical", listBookings.ErrInvalidSortMode), wantStatus: http.StatusBadRequest},
		{name: "bad filter", query: "?status=archived", err: fmt.Errorf("%w: status", listBookings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", query: "", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
