package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// Request модель запроса на создание заказа
type Request struct {
	UserID          int64     // ID сотрудника, оформляющего заказ
	CustomerName    string    // Имя клиента
	CustomerEmail   *string   // Email клиента (опционально)
	CustomerPhone   *string   // Телефон клиента (опционально)
	LocationID      *int64    // ID точки кейтеринга (опционально)
	GuestCount      int       // Количество гостей
	DeliveryDate    time.Time // Дата и время мероприятия
	DeliveryAddress *string   // Адрес доставки (опционально)
	Subtotal        float64   // Стоимость меню
	DeliveryFee     float64   // Стоимость доставки
	DepositAmount   float64   // Сумма депозита
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным заказом
type Response struct {
	Booking *domain.Booking
}

// toDomain собирает новый заказ со статусами по умолчанию
func (r *Request) toDomain(now time.Time) *domain.Booking {
	booking := domain.NewBooking()
	booking.CustomerName = r.CustomerName
	booking.CustomerEmail = r.CustomerEmail
	booking.CustomerPhone = r.CustomerPhone
	booking.LocationID = r.LocationID
	booking.GuestCount = r.GuestCount
	booking.OrderDate = now
	booking.DeliveryDate = r.DeliveryDate
	booking.DeliveryAddress = r.DeliveryAddress
	booking.Pricing = domain.Pricing{
		Subtotal:    r.Subtotal,
		DeliveryFee: r.DeliveryFee,
		Total:       r.Subtotal + r.DeliveryFee,
	}
	booking.DepositAmount = r.DepositAmount
	booking.Notes = r.Notes
	return booking
}
