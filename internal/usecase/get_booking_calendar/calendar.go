package get_booking_calendar

import (
	"cmp"
	"slices"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// buildDays раскладывает заказы по дням месяца
// Дни генерируются от первого до последнего дня месяца с шагом в сутки
func buildDays(monthStart time.Time, bookings []*domain.Booking) []Day {
	loc := monthStart.Location()
	monthEnd := monthStart.AddDate(0, 1, 0)

	days := make([]Day, 0, 31)
	index := make(map[int]int, 31)
	for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
		index[d.Day()] = len(days)
		days = append(days, Day{Date: d, Bookings: []*domain.Booking{}})
	}

	for _, b := range bookings {
		if b.DeliveryDate.IsZero() {
			continue
		}
		local := b.DeliveryDate.In(loc)
		if local.Year() != monthStart.Year() || local.Month() != monthStart.Month() {
			continue
		}
		i := index[local.Day()]
		days[i].Bookings = append(days[i].Bookings, b)
	}

	for i := range days {
		slices.SortStableFunc(days[i].Bookings, func(a, b *domain.Booking) int {
			if c := a.DeliveryDate.Compare(b.DeliveryDate); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return days
}
