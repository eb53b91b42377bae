package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CateringService/internal/api/handlers"
	listBookings "github.com/m04kA/SMC-CateringService/internal/usecase/list_bookings"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
	msgInvalidSort  = "неизвестный режим сортировки"
	msgInvalidData  = "некорректные параметры фильтрации"
)

type Handler struct {
	useCase ListBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ListBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listBookings.ErrInvalidSortMode):
			h.logger.Warn("GET /bookings - Invalid sort mode: sort=%q", req.Sort)
			handlers.RespondBadRequest(w, msgInvalidSort)

		case errors.Is(err, listBookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings listed: sort=%s, page=%d, count=%d, total=%d",
		result.Sort, result.Page, len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
