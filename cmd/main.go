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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminListByAmenityHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/admin_list_by_amenity"
	adminListReservationsHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/admin_list_reservations"
	adminStatsHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/admin_stats"
	cancelReservationHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/get_availability"
	getUserReservationsHandler "github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers/get_user_reservations"
	"github.com/m04kA/SMC-AmenityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityBookingService/internal/config"
	reservationRepo "github.com/m04kA/SMC-AmenityBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityBookingService/internal/integrations/notifications"
	userServiceClient "github.com/m04kA/SMC-AmenityBookingService/internal/integrations/userservice"
	reservationsService "github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/metrics"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-AmenityBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Booking calendar timezone: %s", location)

	// Инициализируем метрики (если включены).
	// Получатели метрик остаются nil-интерфейсами, если метрики выключены.
	var (
		metricsCollector    *metrics.Metrics
		admissionMetrics    createReservationUC.MetricsRecorder
		notificationMetrics notifications.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		admissionMetrics = metricsCollector
		notificationMetrics = metricsCollector
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

	// Без метрик обёртка только делегирует в *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем клиента UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Кэш сессий в Redis (если включен)
	var sessions middleware.SessionResolver = userClient
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, sessions will be resolved via UserService on miss: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancelPing()

		sessions = userServiceClient.NewSessionCache(
			redisClient,
			userClient,
			time.Duration(cfg.Redis.SessionTTL)*time.Second,
			log,
		)
	}

	// Публикация уведомлений (RabbitMQ или только лог)
	var publisher notifications.Publisher
	var rabbitPublisher *notifications.RabbitPublisher

	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err = notifications.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("RabbitMQ publisher initialized (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		publisher = notifications.NewNopPublisher(log)
		log.Info("RabbitMQ disabled, notifications are only logged")
	}

	dispatcher := notifications.NewDispatcher(
		publisher,
		cfg.RabbitMQ.BufferSize,
		time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second,
		log,
		notificationMetrics,
	)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		userClient,
		txMgr,
		dispatcher,
		location,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		dispatcher,
		admissionMetrics,
		location,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		location,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	adminListReservations := adminListReservationsHandler.NewHandler(reservationSvc, log)
	adminListByAmenity := adminListByAmenityHandler.NewHandler(reservationSvc, log)
	adminStats := adminStatsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность объекта на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-SESSION-TOKEN)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessions, log))

	// --- Бронирования жильца ---
	protected.HandleFunc("/bookings", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/bookings", adminListReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/amenity/{amenityId}", adminListByAmenity.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/stats", adminStats.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Отправляем оставшиеся уведомления и закрываем соединения
	dispatcher.Close()
	log.Info("Notification dispatcher drained")

	if rabbitPublisher != nil {
		if err := rabbitPublisher.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ publisher: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close Redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
