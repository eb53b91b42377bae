package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if req.GuestCount <= 0 || req.GuestCount > domain.MaxGuestCount {
		return fmt.Errorf("%w: guestCount must be between 1 and %d", ErrInvalidInput, domain.MaxGuestCount)
	}

	// Проверяем, что дата мероприятия указана
	if req.DeliveryDate.IsZero() {
		return fmt.Errorf("%w: deliveryDate is required", ErrInvalidInput)
	}

	if req.DeliveryAddress != nil && len([]rune(*req.DeliveryAddress)) > domain.MaxDeliveryAddressLength {
		return fmt.Errorf("%w: deliveryAddress is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationId must be positive", ErrInvalidInput)
	}

	return validateAmounts(req.Subtotal, req.DeliveryFee, req.DepositAmount)
}

// validateAmounts проверяет суммы заказа
func validateAmounts(subtotal, deliveryFee, deposit float64) error {
	if subtotal < 0 || deliveryFee < 0 || deposit < 0 {
		return fmt.Errorf("%w: amounts must be non-negative", ErrInvalidAmount)
	}

	// Депозит не может превышать итоговую стоимость
	if deposit > subtotal+deliveryFee {
		return fmt.Errorf("%w: deposit exceeds total", ErrInvalidAmount)
	}

	return nil
}

// validateDate проверяет, что мероприятие не раньше сегодняшнего дня
func validateDate(deliveryDate, now time.Time) error {
	if isDateInPast(deliveryDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	date = date.In(now.Location())
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
