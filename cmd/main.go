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

	addHolidayHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/add_holiday"
	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkAdmissionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_admission"
	commitReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/commit_reservation"
	confirmReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_schedule"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	rejectReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reject_reservation"
	removeHolidayHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/remove_holiday"
	updateScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	scheduleCache "github.com/m04kA/SMC-ReservationService/internal/infra/cache/schedule"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	checkAdmissionUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_admission"
	commitReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/commit_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const redisPingTimeout = 3 * time.Second

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все методы Observe* его проверяют
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	txOpts := []txmanager.Option{txmanager.WithMaxRetries(cfg.Database.MaxTxRetries)}
	if cfg.Metrics.Enabled {
		txOpts = append(txOpts, txmanager.WithMetrics(metricsCollector))
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)
	log.Info("Transaction manager initialized (max_tx_retries=%d)", cfg.Database.MaxTxRetries)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Кэш конфигураций для advisory-проверок и списка слотов (если включён)
	// Запись бронирования всегда читает конфигурацию из базы
	var (
		advisorySchedule checkAdmissionUC.ScheduleRepository = scheduleRepository
		cacheInvalidator scheduleService.CacheInvalidator
	)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, reads will fall back to database: %v", cfg.Redis.Addr, err)
		}
		cancel()

		cached := scheduleCache.NewCachedRepository(scheduleRepository, rdb, cfg.Redis.TTL(), log)
		advisorySchedule = cached
		cacheInvalidator = cached
		log.Info("Schedule cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Публикация событий о записанных бронированиях (если включена)
	var publisher commitReservationUC.EventPublisher

	if cfg.Kafka.Enabled {
		writeTimeout := time.Duration(cfg.Kafka.WriteTimeout) * time.Second
		writer := events.NewKafkaWriter(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, writeTimeout)
		eventPublisher := events.NewPublisher(writer, cfg.Kafka.Topic, writeTimeout, metricsCollector, log)
		defer func() {
			if err := eventPublisher.Close(); err != nil {
				log.Error("Failed to close event publisher: %v", err)
			}
		}()

		publisher = eventPublisher
		log.Info("Event publishing enabled (brokers=%v, topic=%s)", cfg.Kafka.BrokerList(), cfg.Kafka.Topic)
	}

	defaults := cfg.Scheduling.Settings()

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, txMgr, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, cacheInvalidator, txMgr, defaults, log)

	// Инициализируем use cases
	checkAdmissionUseCase := checkAdmissionUC.NewUseCase(
		reservationRepository,
		advisorySchedule,
		defaults,
		metricsCollector,
		log,
	)

	commitReservationUseCase := commitReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		publisher,
		txMgr,
		defaults,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		advisorySchedule,
		defaults,
		log,
	)

	// Инициализируем handlers
	checkAdmission := checkAdmissionHandler.NewHandler(checkAdmissionUseCase, log)
	commitReservation := commitReservationHandler.NewHandler(commitReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	addHoliday := addHolidayHandler.NewHandler(scheduleSvc, log)
	removeHoliday := removeHolidayHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// Доступные слоты пула на дату
	api.HandleFunc("/pools/{poolId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация расписания пула
	api.HandleFunc("/pools/{poolId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Advisory-проверка допуска (с ограничением частоты)
	var admissionChecks http.Handler = http.HandlerFunc(checkAdmission.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		admissionChecks = limiter.Middleware(admissionChecks)
		log.Info("Rate limit for admission checks enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/pools/{poolId}/admission-checks", admissionChecks).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/pools/{poolId}/reservations", commitReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/pools/{poolId}/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием пула ---
	protected.HandleFunc("/pools/{poolId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/pools/{poolId}/holidays/{date}", addHoliday.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/pools/{poolId}/holidays/{date}", removeHoliday.Handle).Methods(http.MethodDelete)

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
