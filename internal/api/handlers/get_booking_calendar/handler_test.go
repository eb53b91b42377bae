package get_booking_calendar

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
	getBookingCalendar "github.com/m04kA/SMC-CateringService/internal/usecase/get_booking_calendar"
)

type fakeUseCase struct {
	req *getBookingCalendar.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getBookingCalendar.Request) (*getBookingCalendar.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}

	b := domain.NewBooking()
	b.ID = 8
	b.DeliveryDate = time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

	return &getBookingCalendar.Response{
		Month: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Days: []getBookingCalendar.Day{
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Bookings: []*domain.Booking{}},
			{Date: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), Bookings: []*domain.Booking{b}},
		},
		Total: 1,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/calendar?month=2024-02", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-02", uc.req.Month)

	var body CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-02", body.Month)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Days, 2)
	assert.Equal(t, "2024-02-01", body.Days[0].Date)
	assert.Empty(t, body.Days[0].Bookings)
	require.Len(t, body.Days[1].Bookings, 1)
	assert.Equal(t, int64(8), body.Days[1].Bookings[0].ID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid month", err: fmt.Errorf("%w: \"2024-13\"", getBookingCalendar.ErrInvalidMonth), wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/calendar?month=2024-13", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
