package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsFullyCompleted(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		payment PaymentStatus
		want    bool
	}{
		{"completed and fully paid", StatusCompleted, PaymentFullyPaid, true},
		{"completed with deposit only", StatusCompleted, PaymentDepositPaid, false},
		{"fully paid but ready", StatusReady, PaymentFullyPaid, false},
		{"pending", StatusPending, PaymentPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, PaymentStatus: tt.payment}
			assert.Equal(t, tt.want, b.IsFullyCompleted())
		})
	}
}

func TestBooking_ApplyDefaults(t *testing.T) {
	b := &Booking{}
	b.ApplyDefaults()

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)

	b = &Booking{Status: StatusReady, PaymentStatus: PaymentFullyPaid}
	b.ApplyDefaults()

	assert.Equal(t, StatusReady, b.Status)
	assert.Equal(t, PaymentFullyPaid, b.PaymentStatus)
}

func TestNewBooking_Defaults(t *testing.T) {
	b := NewBooking()

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
}

func TestBooking_HasValidDates(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Booking{OrderDate: now, DeliveryDate: now}).HasValidDates())
	assert.False(t, (&Booking{OrderDate: now}).HasValidDates())
	assert.False(t, (&Booking{DeliveryDate: now}).HasValidDates())
}

func TestBooking_OutstandingAmount(t *testing.T) {
	pricing := Pricing{Total: 1000}

	assert.Equal(t, 1000.0, (&Booking{Pricing: pricing, PaymentStatus: PaymentPending}).OutstandingAmount())
	assert.Equal(t, 700.0, (&Booking{Pricing: pricing, DepositAmount: 300, PaymentStatus: PaymentDepositPaid}).OutstandingAmount())
	assert.Equal(t, 0.0, (&Booking{Pricing: pricing, DepositAmount: 1500, PaymentStatus: PaymentDepositPaid}).OutstandingAmount())
	assert.Equal(t, 0.0, (&Booking{Pricing: pricing, PaymentStatus: PaymentFullyPaid}).OutstandingAmount())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	active := &Booking{Status: StatusConfirmed}
	assert.True(t, active.CanTransitionTo(StatusPreparing))
	assert.True(t, active.CanTransitionTo(StatusCancelled))

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(StatusConfirmed))
	assert.True(t, cancelled.CanTransitionTo(StatusCancelled))
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, StatusPreparing.IsValid())
	assert.False(t, BookingStatus("in_progress").IsValid())
	assert.True(t, PaymentDepositPaid.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}
