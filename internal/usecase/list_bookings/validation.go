package list_bookings

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// maxPageSize верхняя граница размера страницы
const maxPageSize = 100

// validateRequest валидирует запрос и строит фильтр репозитория
func validateRequest(req *Request) (SortMode, domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	mode, err := ParseSortMode(req.Sort)
	if err != nil {
		return "", filter, fmt.Errorf("%w: sort=%q", err, req.Sort)
	}

	if req.Page < 0 {
		return "", filter, fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}

	if req.PageSize < 0 || req.PageSize > maxPageSize {
		return "", filter, fmt.Errorf("%w: pageSize must be between 1 and %d", ErrInvalidInput, maxPageSize)
	}

	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() {
			return "", filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.PaymentStatus != nil {
		payment := domain.PaymentStatus(*req.PaymentStatus)
		if !payment.IsValid() {
			return "", filter, fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalidInput, *req.PaymentStatus)
		}
		filter.PaymentStatus = &payment
	}

	if req.Search != nil {
		if search := strings.TrimSpace(*req.Search); search != "" {
			filter.Search = &search
		}
	}

	return mode, filter, nil
}
