package get_dashboard_stats

import (
	"context"

	"github.com/m04kA/SMC-CateringService/internal/service/dashboard/models"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
