package list_bookings

import "github.com/m04kA/SMC-CateringService/internal/domain"

// Request модель запроса списка бронирований
type Request struct {
	Sort          string  // режим сортировки, пустая строка = priority
	Page          int     // номер страницы с 1, 0 = первая
	PageSize      int     // 0 = размер по умолчанию из конфигурации
	Status        *string // фильтр по статусу (опционально)
	PaymentStatus *string // фильтр по статусу оплаты (опционально)
	Search        *string // поиск по клиенту (опционально)
}

// Response модель ответа со страницей бронирований
type Response struct {
	Bookings []*domain.Booking
	Sort     SortMode
	Page     int
	PageSize int
	Total    int
	HasNext  bool
	HasPrev  bool
}
