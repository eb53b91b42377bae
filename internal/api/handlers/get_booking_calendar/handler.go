package get_booking_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CateringService/internal/api/handlers"
	getBookingCalendar "github.com/m04kA/SMC-CateringService/internal/usecase/get_booking_calendar"
)

const (
	msgInvalidMonth = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetBookingCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/calendar?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.useCase.Execute(r.Context(), &getBookingCalendar.Request{Month: month})
	if err != nil {
		switch {
		case errors.Is(err, getBookingCalendar.ErrInvalidMonth):
			h.logger.Warn("GET /bookings/calendar - Invalid month: %q", month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /bookings/calendar - Failed to build calendar: month=%q, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/calendar - Calendar built: month=%s, total=%d", month, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
