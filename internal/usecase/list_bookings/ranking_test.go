package list_bookings

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

var now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func booking(id int64, orderDate, deliveryDate time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentDepositPaid,
		OrderDate:     orderDate,
		DeliveryDate:  deliveryDate,
	}
}

func fullyCompleted(b *domain.Booking) *domain.Booking {
	b.Status = domain.StatusCompleted
	b.PaymentStatus = domain.PaymentFullyPaid
	return b
}

func ids(bookings []*domain.Booking) []int64 {
	result := make([]int64, len(bookings))
	for i, b := range bookings {
		result[i] = b.ID
	}
	return result
}

// randomBookings генерирует детерминированный набор бронирований вокруг now
func randomBookings(n int) []*domain.Booking {
	r := rand.New(rand.NewSource(42))
	statuses := domain.AllStatuses
	payments := domain.AllPaymentStatuses

	bookings := make([]*domain.Booking, n)
	for i := range bookings {
		order := now.Add(-time.Duration(r.Intn(24*60)) * time.Hour)
		delivery := now.Add(time.Duration(r.Intn(24*20)-24*10) * time.Hour)
		bookings[i] = &domain.Booking{
			ID:            int64(i + 1),
			Status:        statuses[r.Intn(len(statuses))],
			PaymentStatus: payments[r.Intn(len(payments))],
			OrderDate:     order,
			DeliveryDate:  delivery,
		}
	}
	return bookings
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"", SortPriority, false},
		{"priority", SortPriority, false},
		{"latest", SortLatest, false},
		{"event_date_newest", SortEventDateNewest, false},
		{"event_date_oldest", SortEventDateOldest, false},
		{"random", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSortMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank_TodayTierBeforeFuture(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, date(2024, 1, 3, 0), date(2024, 1, 10, 18)),
		booking(2, date(2024, 1, 1, 0), date(2024, 1, 10, 20)),
		booking(3, date(2024, 1, 5, 0), now.Add(72*time.Hour)),
	}

	got := Rank(bookings, SortPriority, now)

	assert.Equal(t, []int64{2, 1, 3}, ids(got))
}

func TestRank_FullyCompletedAfterPastPending(t *testing.T) {
	a := fullyCompleted(booking(1, date(2023, 12, 1, 0), date(2024, 6, 1, 0)))
	b := booking(2, date(2023, 12, 1, 0), date(2024, 1, 1, 0))
	b.Status = domain.StatusPending
	b.PaymentStatus = domain.PaymentPending

	got := Rank([]*domain.Booking{a, b}, SortPriority, now)

	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestRank_EmptyInput(t *testing.T) {
	for _, mode := range []SortMode{SortPriority, SortLatest, SortEventDateNewest, SortEventDateOldest} {
		got := Rank([]*domain.Booking{}, mode, now)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		assert.Empty(t, Rank(nil, mode, now))
	}
}

func TestRank_TierOrdering(t *testing.T) {
	orderDate := date(2024, 1, 1, 0)
	past := booking(1, orderDate, now.Add(-30*time.Hour))
	future := booking(2, orderDate, now.Add(96*time.Hour))
	upcoming := booking(3, orderDate, now.Add(30*time.Hour))
	today := booking(4, orderDate, now.Add(-2*time.Hour))

	got := Rank([]*domain.Booking{past, future, upcoming, today}, SortPriority, now)

	assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))
}

func TestRank_UpcomingBoundaryIsInclusive(t *testing.T) {
	orderDate := date(2024, 1, 1, 0)
	atBoundary := booking(1, orderDate, now.Add(48*time.Hour))
	justAfter := booking(2, date(2024, 1, 9, 0), now.Add(48*time.Hour+time.Minute))

	got := Rank([]*domain.Booking{justAfter, atBoundary}, SortPriority, now)

	// 48 часов ровно ещё "ближайшее" мероприятие и идёт раньше "будущего"
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestRank_WithinTierTieBreaks(t *testing.T) {
	t.Run("today ties by earlier delivery", func(t *testing.T) {
		orderDate := date(2024, 1, 5, 0)
		late := booking(1, orderDate, date(2024, 1, 10, 21))
		early := booking(2, orderDate, date(2024, 1, 10, 13))

		assert.Equal(t, []int64{2, 1}, ids(Rank([]*domain.Booking{late, early}, SortPriority, now)))
	})

	t.Run("upcoming by latest order then earlier delivery", func(t *testing.T) {
		older := booking(1, date(2024, 1, 2, 0), now.Add(20*time.Hour))
		newerLate := booking(2, date(2024, 1, 8, 0), now.Add(40*time.Hour))
		newerEarly := booking(3, date(2024, 1, 8, 0), now.Add(24*time.Hour+time.Hour))

		got := Rank([]*domain.Booking{older, newerLate, newerEarly}, SortPriority, now)
		assert.Equal(t, []int64{3, 2, 1}, ids(got))
	})

	t.Run("future by latest order then earlier delivery", func(t *testing.T) {
		older := booking(1, date(2024, 1, 2, 0), now.Add(100*time.Hour))
		newerLate := booking(2, date(2024, 1, 8, 0), now.Add(300*time.Hour))
		newerEarly := booking(3, date(2024, 1, 8, 0), now.Add(200*time.Hour))

		got := Rank([]*domain.Booking{older, newerLate, newerEarly}, SortPriority, now)
		assert.Equal(t, []int64{3, 2, 1}, ids(got))
	})

	t.Run("past by latest order then most recent delivery", func(t *testing.T) {
		older := booking(1, date(2023, 12, 2, 0), now.Add(-100*time.Hour))
		newerOld := booking(2, date(2023, 12, 20, 0), now.Add(-300*time.Hour))
		newerRecent := booking(3, date(2023, 12, 20, 0), now.Add(-50*time.Hour))

		got := Rank([]*domain.Booking{older, newerOld, newerRecent}, SortPriority, now)
		assert.Equal(t, []int64{3, 2, 1}, ids(got))
	})
}

func TestRank_TodayUsesNowLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	localNow := time.Date(2024, 1, 10, 12, 0, 0, 0, moscow)

	// 23:30 UTC 10 января - это уже 11 января по Москве, мероприятие "ближайшее", а не сегодняшнее
	tomorrowLocal := booking(1, date(2024, 1, 1, 0), time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC))
	todayLocal := booking(2, date(2024, 1, 1, 0), time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	got := Rank([]*domain.Booking{tomorrowLocal, todayLocal}, SortPriority, localNow)

	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestRank_FullyCompletedAlwaysLast(t *testing.T) {
	got := Rank(randomBookings(200), SortPriority, now)

	seenCompleted := false
	for _, b := range got {
		if b.IsFullyCompleted() {
			seenCompleted = true
			continue
		}
		require.False(t, seenCompleted, "booking id=%d placed after a fully completed booking", b.ID)
	}
}

func TestRank_FullyCompletedByDeliveryDesc(t *testing.T) {
	got := Rank(randomBookings(200), SortPriority, now)

	var completed []*domain.Booking
	for _, b := range got {
		if b.IsFullyCompleted() {
			completed = append(completed, b)
		}
	}

	require.NotEmpty(t, completed)
	for i := 1; i < len(completed); i++ {
		assert.False(t, completed[i].DeliveryDate.After(completed[i-1].DeliveryDate),
			"id=%d should not follow id=%d", completed[i].ID, completed[i-1].ID)
	}
}

func TestRank_SimpleModesAreMonotonic(t *testing.T) {
	bookings := randomBookings(100)

	latest := Rank(bookings, SortLatest, now)
	for i := 1; i < len(latest); i++ {
		assert.False(t, latest[i].OrderDate.After(latest[i-1].OrderDate))
	}

	newest := Rank(bookings, SortEventDateNewest, now)
	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i].DeliveryDate.After(newest[i-1].DeliveryDate))
	}

	oldest := Rank(bookings, SortEventDateOldest, now)
	for i := 1; i < len(oldest); i++ {
		assert.False(t, oldest[i].DeliveryDate.Before(oldest[i-1].DeliveryDate))
	}
}

func TestRank_Idempotent(t *testing.T) {
	for _, mode := range []SortMode{SortPriority, SortLatest, SortEventDateNewest, SortEventDateOldest} {
		t.Run(string(mode), func(t *testing.T) {
			once := Rank(randomBookings(150), mode, now)
			twice := Rank(once, mode, now)

			assert.Equal(t, ids(once), ids(twice))
		})
	}
}

func TestRank_IsPermutationAndDoesNotMutate(t *testing.T) {
	bookings := randomBookings(50)
	originalOrder := ids(bookings)
	snapshot := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		snapshot[i] = *b
	}

	got := Rank(bookings, SortPriority, now)

	assert.Len(t, got, len(bookings))
	assert.ElementsMatch(t, originalOrder, ids(got))
	assert.Equal(t, originalOrder, ids(bookings))
	for i, b := range bookings {
		assert.Equal(t, snapshot[i], *b)
	}
}

func TestRank_MalformedDatesPlacedLast(t *testing.T) {
	missingDelivery := booking(9, date(2024, 1, 1, 0), time.Time{})
	missingOrder := booking(3, time.Time{}, now.Add(time.Hour))
	ok1 := booking(5, date(2024, 1, 2, 0), now.Add(-time.Hour))
	ok2 := fullyCompleted(booking(7, date(2024, 1, 3, 0), now.Add(200*time.Hour)))

	for _, mode := range []SortMode{SortPriority, SortLatest, SortEventDateNewest, SortEventDateOldest} {
		t.Run(string(mode), func(t *testing.T) {
			got := Rank([]*domain.Booking{missingDelivery, ok1, missingOrder, ok2}, mode, now)

			require.Len(t, got, 4)
			assert.ElementsMatch(t, []int64{5, 7}, ids(got[:2]))
			assert.Equal(t, []int64{3, 9}, ids(got[2:]))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		delivery time.Time
		want     urgency
	}{
		{"exactly now is today", now, urgency{today: true}},
		{"later today is today and upcoming", now.Add(5 * time.Hour), urgency{today: true, upcoming: true}},
		{"earlier today is today and past", now.Add(-5 * time.Hour), urgency{today: true, past: true}},
		{"in 48h is upcoming", now.Add(48 * time.Hour), urgency{upcoming: true}},
		{"in 72h is future", now.Add(72 * time.Hour), urgency{future: true}},
		{"yesterday is past", now.Add(-24 * time.Hour), urgency{past: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(booking(1, now, tt.delivery), now))
		})
	}
}
