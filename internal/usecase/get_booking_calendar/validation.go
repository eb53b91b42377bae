package get_booking_calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// parseMonth разбирает месяц запроса и возвращает его первый день
func parseMonth(month string, now time.Time) (time.Time, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}

	start, err := time.ParseInLocation(domain.MonthFormat, month, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	return start, nil
}
