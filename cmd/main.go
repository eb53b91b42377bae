package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CateringService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/get_booking"
	getBookingCalendarHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/get_booking_calendar"
	getDashboardStatsHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/get_dashboard_stats"
	listBookingsHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/update_booking_status"
	updatePaymentStatusHandler "github.com/m04kA/SMC-CateringService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-CateringService/internal/api/middleware"
	"github.com/m04kA/SMC-CateringService/internal/config"
	statsCache "github.com/m04kA/SMC-CateringService/internal/infra/cache/stats"
	"github.com/m04kA/SMC-CateringService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CateringService/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/SMC-CateringService/internal/service/bookings"
	dashboardService "github.com/m04kA/SMC-CateringService/internal/service/dashboard"
	createBookingUC "github.com/m04kA/SMC-CateringService/internal/usecase/create_booking"
	getBookingCalendarUC "github.com/m04kA/SMC-CateringService/internal/usecase/get_booking_calendar"
	listBookingsUC "github.com/m04kA/SMC-CateringService/internal/usecase/list_bookings"
	"github.com/m04kA/SMC-CateringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CateringService/pkg/logger"
	"github.com/m04kA/SMC-CateringService/pkg/metrics"
	"github.com/m04kA/SMC-CateringService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CateringService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Bookings.Location()
	if err != nil {
		log.Fatal("Invalid business timezone %q: %v", cfg.Bookings.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Опциональные зависимости передаются как nil-интерфейсы, а не nil-указатели
	var (
		cacheInvalidator bookingsService.StatsCache
		cacheStore       dashboardService.StatsCache
		eventPublisher   bookingsService.EventPublisher
	)

	// Redis для кеша статистики
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis is unavailable, stats cache disabled: %v", err)
		} else {
			cache := statsCache.NewCache(redisClient, time.Duration(cfg.Redis.StatsTTL)*time.Second)
			cacheInvalidator = cache
			cacheStore = cache
			log.Info("Stats cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.StatsTTL)
		}
	}

	// RabbitMQ для событий об изменении заказов
	if cfg.RabbitMQ.Enabled {
		publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Warn("RabbitMQ is unavailable, booking events disabled: %v", err)
		} else {
			defer publisher.Close()
			eventPublisher = publisher
			log.Info("Booking events publisher enabled (queue=%s)", cfg.RabbitMQ.Queue)
		}
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		cacheInvalidator,
		eventPublisher,
		log,
	)
	dashboardSvc := dashboardService.NewService(
		bookingRepository,
		cacheStore,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	listBookingsUseCase := listBookingsUC.NewUseCase(
		bookingRepository,
		metricsCollector,
		location,
		cfg.Bookings.PageSize,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		cacheInvalidator,
		eventPublisher,
		location,
		log,
	)
	getBookingCalendarUseCase := getBookingCalendarUC.NewUseCase(
		bookingRepository,
		location,
		log,
	)

	// Инициализируем handlers
	listBookings := listBookingsHandler.NewHandler(listBookingsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingCalendar := getBookingCalendarHandler.NewHandler(getBookingCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(dashboardSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /health - Database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	// Список заказов с сортировкой и пагинацией
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Создание заказа
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Календарь заказов на месяц (регистрируется раньше /bookings/{bookingId})
	protected.HandleFunc("/bookings/calendar", getBookingCalendar.Handle).Methods(http.MethodGet)

	// Получение заказа по ID
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса заказа
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Смена статуса оплаты
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// --- Дашборд ---
	protected.HandleFunc("/dashboard/stats", getDashboardStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
