package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// UpdatePaymentStatusRequest запрос на обновление статуса оплаты
type UpdatePaymentStatusRequest struct {
	UserID        int64  `json:"userId"`
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// PricingResponse стоимость заказа
type PricingResponse struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	LocationID    *int64  `json:"locationId,omitempty"`
	GuestCount    int     `json:"guestCount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	OrderDate       *time.Time `json:"orderDate"`    // null, если дата в хранилище повреждена
	DeliveryDate    *time.Time `json:"deliveryDate"` // null, если дата в хранилище повреждена
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`

	Pricing           PricingResponse `json:"pricing"`
	DepositAmount     float64         `json:"depositAmount"`
	OutstandingAmount float64         `json:"outstandingAmount"`
	Notes             *string         `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		LocationID:      b.LocationID,
		GuestCount:      b.GuestCount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		OrderDate:       timeOrNil(b.OrderDate),
		DeliveryDate:    timeOrNil(b.DeliveryDate),
		DeliveryAddress: b.DeliveryAddress,
		Pricing: PricingResponse{
			Subtotal:    b.Pricing.Subtotal,
			DeliveryFee: b.Pricing.DeliveryFee,
			Total:       b.Pricing.Total,
		},
		DepositAmount:     b.DepositAmount,
		OutstandingAmount: b.OutstandingAmount(),
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
