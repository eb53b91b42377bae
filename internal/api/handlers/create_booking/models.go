package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-CateringService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	LocationID      *int64  `json:"locationId,omitempty"`
	GuestCount      int     `json:"guestCount"`
	DeliveryDate    string  `json:"deliveryDate"` // "2025-10-15T18:00:00+03:00"
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	Subtotal        float64 `json:"subtotal"`
	DeliveryFee     float64 `json:"deliveryFee"`
	DepositAmount   float64 `json:"depositAmount"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	deliveryDate, err := time.Parse(time.RFC3339, r.DeliveryDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		LocationID:      r.LocationID,
		GuestCount:      r.GuestCount,
		DeliveryDate:    deliveryDate,
		DeliveryAddress: r.DeliveryAddress,
		Subtotal:        r.Subtotal,
		DeliveryFee:     r.DeliveryFee,
		DepositAmount:   r.DepositAmount,
		Notes:           r.Notes,
	}, nil
}
