package update_payment_status

import (
	"github.com/m04kA/SMC-CateringService/internal/service/bookings/models"
)

// UpdatePaymentStatusRequest HTTP request model
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePaymentStatusRequest) ToServiceRequest(userID int64) *models.UpdatePaymentStatusRequest {
	return &models.UpdatePaymentStatusRequest{
		UserID:        userID,
		PaymentStatus: r.PaymentStatus,
	}
}
