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

	cancelAppointmentHandler "github.com/estatelink/viewing-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/estatelink/viewing-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/estatelink/viewing-service/internal/api/handlers/get_appointment"
	getUserAppointmentsHandler "github.com/estatelink/viewing-service/internal/api/handlers/get_user_appointments"
	rescheduleAppointmentHandler "github.com/estatelink/viewing-service/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/estatelink/viewing-service/internal/api/handlers/update_appointment_status"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	"github.com/estatelink/viewing-service/internal/config"
	appointmentRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	listingServiceClient "github.com/estatelink/viewing-service/internal/integrations/listingservice"
	userServiceClient "github.com/estatelink/viewing-service/internal/integrations/userservice"
	appointmentsService "github.com/estatelink/viewing-service/internal/service/appointments"
	createAppointmentUC "github.com/estatelink/viewing-service/internal/usecase/create_appointment"
	rescheduleAppointmentUC "github.com/estatelink/viewing-service/internal/usecase/reschedule_appointment"
	"github.com/estatelink/viewing-service/pkg/dbmetrics"
	"github.com/estatelink/viewing-service/pkg/logger"
	"github.com/estatelink/viewing-service/pkg/metrics"
	"github.com/estatelink/viewing-service/pkg/simpletxmanager"
	"github.com/estatelink/viewing-service/pkg/txmanager"
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

	log.Info("Starting ViewingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	listingClient := listingServiceClient.NewClient(
		cfg.ListingService.URL,
		time.Duration(cfg.ListingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ListingService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ListingService.URL, cfg.ListingService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var appointmentRepository *appointmentRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис бронирований просмотров
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		listingClient,
		userClient,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request id для трассировки запросов в логах
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на просмотр ---
	// Создание записи на просмотр
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID (только участники)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи агентом (confirmed/cancelled/completed)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи участником
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Перенос записи на другой слот
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Записи пользователя (клиент - свои, агент - по своим объектам)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
