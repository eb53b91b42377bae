package get_booking_calendar

import (
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// Request модель запроса календаря
type Request struct {
	Month string // Месяц в формате YYYY-MM, пустое значение означает текущий месяц
}

// Response модель ответа с календарём месяца
type Response struct {
	Month time.Time // Первый день месяца в часовом поясе бизнеса
	Days  []Day     // Все дни месяца по порядку
	Total int       // Количество заказов за месяц
}

// Day заказы одного календарного дня
type Day struct {
	Date     time.Time         // Начало дня
	Bookings []*domain.Booking // Заказы, отсортированные по времени мероприятия
}
