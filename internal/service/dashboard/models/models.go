package models

import (
	"time"

	"github.com/m04kA/SMC-CateringService/internal/domain"
)

// StatsResponse статистика для дашборда
type StatsResponse struct {
	TotalBookings     int            `json:"totalBookings"`
	ByStatus          map[string]int `json:"byStatus"`
	ByPaymentStatus   map[string]int `json:"byPaymentStatus"`
	TodayEvents       int            `json:"todayEvents"`
	UpcomingEvents    int            `json:"upcomingEvents"`
	Revenue           float64        `json:"revenue"`
	OutstandingAmount float64        `json:"outstandingAmount"`
	GeneratedAt       time.Time      `json:"generatedAt"`
}

// FromDomainStats конвертирует domain модель в DTO
// Все статусы присутствуют в ответе, отсутствующие считаются нулём
func FromDomainStats(s *domain.DashboardStats) *StatsResponse {
	if s == nil {
		return nil
	}

	resp := &StatsResponse{
		TotalBookings:     s.TotalBookings,
		ByStatus:          make(map[string]int, len(domain.AllStatuses)),
		ByPaymentStatus:   make(map[string]int, len(domain.AllPaymentStatuses)),
		TodayEvents:       s.TodayEvents,
		UpcomingEvents:    s.UpcomingEvents,
		Revenue:           s.Revenue,
		OutstandingAmount: s.OutstandingAmount,
		GeneratedAt:       s.GeneratedAt,
	}

	for _, status := range domain.AllStatuses {
		resp.ByStatus[string(status)] = s.ByStatus[status]
	}
	for _, status := range domain.AllPaymentStatuses {
		resp.ByPaymentStatus[string(status)] = s.ByPaymentStatus[status]
	}

	return resp
}
