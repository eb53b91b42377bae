package list_bookings

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CateringService/internal/service/bookings/models"
	listBookings "github.com/m04kA/SMC-CateringService/internal/usecase/list_bookings"
	"github.com/m04kA/SMC-CateringService/pkg/ptr"
)

// ListBookingsResponse HTTP response model
type ListBookingsResponse struct {
	Bookings []models.BookingResponse `json:"bookings"`
	Sort     string                   `json:"sort"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"pageSize"`
	Total    int                      `json:"total"`
	HasNext  bool                     `json:"hasNext"`
	HasPrev  bool                     `json:"hasPrev"`
}

// ParseQuery собирает модель use case из query параметров
func ParseQuery(q url.Values) (*listBookings.Request, error) {
	req := &listBookings.Request{
		Sort:          q.Get("sort"),
		Status:        optional(q, "status"),
		PaymentStatus: optional(q, "paymentStatus"),
		Search:        optional(q, "search"),
	}

	var err error
	if req.Page, err = optionalInt(q, "page"); err != nil {
		return nil, err
	}
	if req.PageSize, err = optionalInt(q, "pageSize"); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listBookings.Response) *ListBookingsResponse {
	return &ListBookingsResponse{
		Bookings: models.FromDomainBookingList(resp.Bookings).Bookings,
		Sort:     string(resp.Sort),
		Page:     resp.Page,
		PageSize: resp.PageSize,
		Total:    resp.Total,
		HasNext:  resp.HasNext,
		HasPrev:  resp.HasPrev,
	}
}

func optional(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}

func optionalInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
