package list_bookings

import (
	"cmp"
	"slices"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// SortMode режим сортировки списка бронирований
type SortMode string

const (
	SortPriority        SortMode = "priority"
	SortLatest          SortMode = "latest"
	SortEventDateNewest SortMode = "event_date_newest"
	SortEventDateOldest SortMode = "event_date_oldest"
)

// ParseSortMode разбирает режим сортировки, пустая строка = priority
func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(s); mode {
	case "":
		return SortPriority, nil
	case SortPriority, SortLatest, SortEventDateNewest, SortEventDateOldest:
		return mode, nil
	default:
		return "", ErrInvalidSortMode
	}
}

// Rank возвращает новый отсортированный слайс, входной слайс и бронирования не изменяются.
//
// Бронирования с нулевыми OrderDate/DeliveryDate всегда идут в конце списка
// (между собой по возрастанию ID) в любом режиме.
func Rank(bookings []*domain.Booking, mode SortMode, now time.Time) []*domain.Booking {
	valid := make([]*domain.Booking, 0, len(bookings))
	malformed := make([]*domain.Booking, 0)

	for _, b := range bookings {
		if b.HasValidDates() {
			valid = append(valid, b)
		} else {
			malformed = append(malformed, b)
		}
	}

	slices.SortStableFunc(valid, comparator(mode, now))
	slices.SortStableFunc(malformed, func(a, b *domain.Booking) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return append(valid, malformed...)
}

func comparator(mode SortMode, now time.Time) func(a, b *domain.Booking) int {
	switch mode {
	case SortLatest:
		return func(a, b *domain.Booking) int {
			return b.OrderDate.Compare(a.OrderDate)
		}
	case SortEventDateNewest:
		return func(a, b *domain.Booking) int {
			return b.DeliveryDate.Compare(a.DeliveryDate)
		}
	case SortEventDateOldest:
		return func(a, b *domain.Booking) int {
			return a.DeliveryDate.Compare(b.DeliveryDate)
		}
	default:
		return func(a, b *domain.Booking) int {
			return comparePriority(a, b, now)
		}
	}
}

// urgency положение мероприятия относительно now
type urgency struct {
	today    bool // тот же календарный день, что и now
	upcoming bool // 0 < delivery-now <= 48h
	future   bool // delivery-now > 48h
	past     bool // delivery-now < 0
}

func classify(b *domain.Booking, now time.Time) urgency {
	diff := b.DeliveryDate.Sub(now)
	return urgency{
		today:    sameDay(b.DeliveryDate.In(now.Location()), now),
		upcoming: diff > 0 && diff <= domain.UpcomingWindow,
		future:   diff > domain.UpcomingWindow,
		past:     diff < 0,
	}
}

// comparePriority составной компаратор режима priority, срабатывает первое подходящее правило
func comparePriority(a, b *domain.Booking, now time.Time) int {
	aDone, bDone := a.IsFullyCompleted(), b.IsFullyCompleted()

	// Выполненные и оплаченные заказы всегда в конце
	if aDone != bDone {
		if aDone {
			return 1
		}
		return -1
	}
	if aDone && bDone {
		return b.DeliveryDate.Compare(a.DeliveryDate)
	}

	ua, ub := classify(a, now), classify(b, now)

	// Сегодняшние мероприятия: раньше оформленный заказ первым
	switch {
	case ua.today && !ub.today:
		return -1
	case !ua.today && ub.today:
		return 1
	case ua.today && ub.today:
		if c := a.OrderDate.Compare(b.OrderDate); c != 0 {
			return c
		}
		return a.DeliveryDate.Compare(b.DeliveryDate)
	}

	// Ближайшие 48 часов: свежий заказ первым
	switch {
	case ua.upcoming && !ub.upcoming:
		return -1
	case !ua.upcoming && ub.upcoming:
		return 1
	case ua.upcoming && ub.upcoming:
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return a.DeliveryDate.Compare(b.DeliveryDate)
	}

	switch {
	case ua.future && ub.past:
		return -1
	case ua.past && ub.future:
		return 1
	case ua.future && ub.future:
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return a.DeliveryDate.Compare(b.DeliveryDate)
	case ua.past && ub.past:
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return b.DeliveryDate.Compare(a.DeliveryDate)
	}

	return b.OrderDate.Compare(a.OrderDate)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
