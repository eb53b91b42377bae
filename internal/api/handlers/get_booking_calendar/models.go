package get_booking_calendar

import (
	"github.com/m04kA/SMC-CateringService/internal/domain"
	"github.com/m04kA/SMC-CateringService/internal/service/bookings/models"
	getBookingCalendar "github.com/m04kA/SMC-CateringService/internal/usecase/get_booking_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Month string        `json:"month"` // "2025-10"
	Total int           `json:"total"`
	Days  []DayResponse `json:"days"`
}

// DayResponse заказы одного дня
type DayResponse struct {
	Date     string                   `json:"date"` // "2025-10-15"
	Bookings []models.BookingResponse `json:"bookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:     d.Date.Format(domain.DateFormat),
			Bookings: models.FromDomainBookingList(d.Bookings).Bookings,
		})
	}

	return &CalendarResponse{
		Month: resp.Month.Format(domain.MonthFormat),
		Total: resp.Total,
		Days:  days,
	}
}
