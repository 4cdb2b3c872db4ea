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

	addNotesHandler "github.com/telemedika/appointment-service/internal/api/handlers/add_notes"
	bookAppointmentHandler "github.com/telemedika/appointment-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/telemedika/appointment-service/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/telemedika/appointment-service/internal/api/handlers/complete_appointment"
	getAppointmentHandler "github.com/telemedika/appointment-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/telemedika/appointment-service/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/telemedika/appointment-service/internal/api/handlers/get_available_slots"
	getDoctorHandler "github.com/telemedika/appointment-service/internal/api/handlers/get_doctor"
	getUserAppointmentsHandler "github.com/telemedika/appointment-service/internal/api/handlers/get_user_appointments"
	listDoctorsHandler "github.com/telemedika/appointment-service/internal/api/handlers/list_doctors"
	setAvailabilityHandler "github.com/telemedika/appointment-service/internal/api/handlers/set_availability"
	"github.com/telemedika/appointment-service/internal/api/middleware"
	"github.com/telemedika/appointment-service/internal/config"
	"github.com/telemedika/appointment-service/internal/domain"
	"github.com/telemedika/appointment-service/internal/infra/cache/slotcache"
	"github.com/telemedika/appointment-service/internal/infra/events"
	appointmentRepo "github.com/telemedika/appointment-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/telemedika/appointment-service/internal/infra/storage/availability"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
	creditLedgerClient "github.com/telemedika/appointment-service/internal/integrations/creditledger"
	videoServiceClient "github.com/telemedika/appointment-service/internal/integrations/videoservice"
	appointmentsService "github.com/telemedika/appointment-service/internal/service/appointments"
	doctorsService "github.com/telemedika/appointment-service/internal/service/doctors"
	bookAppointmentUC "github.com/telemedika/appointment-service/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/telemedika/appointment-service/internal/usecase/get_available_slots"
	setAvailabilityUC "github.com/telemedika/appointment-service/internal/usecase/set_availability"
	"github.com/telemedika/appointment-service/pkg/dbmetrics"
	"github.com/telemedika/appointment-service/pkg/logger"
	"github.com/telemedika/appointment-service/pkg/metrics"
	"github.com/telemedika/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

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

	// Подключаемся к redis для кэша слотов
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// Кэш - необязательная зависимость, промахи обрабатываются штатно
		log.Warn("Failed to ping redis, slot cache degraded: %v", err)
	} else {
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}
	cache := slotcache.New(rdb, time.Duration(cfg.Redis.TTL)*time.Second, log)

	// Инициализируем издателя событий приемов
	type appointmentEvents interface {
		PublishBooked(ctx context.Context, appt *domain.Appointment)
		PublishCancelled(ctx context.Context, appt *domain.Appointment)
	}
	var eventPublisher appointmentEvents

	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Info("Kafka event publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		eventPublisher = events.NoopPublisher{}
		log.Info("Kafka disabled, appointment events will not be published")
	}

	// Инициализируем интеграционных клиентов
	ledgerClient := creditLedgerClient.NewClient(
		cfg.CreditLedger.URL,
		time.Duration(cfg.CreditLedger.Timeout)*time.Second,
		log,
	)
	videoClient := videoServiceClient.NewClient(
		cfg.VideoService.URL,
		time.Duration(cfg.VideoService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CreditLedger=%s timeout=%ds, VideoService=%s timeout=%ds)",
		cfg.CreditLedger.URL, cfg.CreditLedger.Timeout, cfg.VideoService.URL, cfg.VideoService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		userRepository         *userRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
		txMgr                  *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = txmanager.NewFromSQLDB(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		cache,
		eventPublisher,
		log,
	)
	doctorSvc := doctorsService.NewService(
		userRepository,
		availabilityRepository,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		userRepository,
		appointmentRepository,
		ledgerClient,
		videoClient,
		cache,
		eventPublisher,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		userRepository,
		availabilityRepository,
		appointmentRepository,
		cache,
		log,
	)
	setAvailabilityUseCase := setAvailabilityUC.NewUseCase(
		userRepository,
		availabilityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	setAvailability := setAvailabilityHandler.NewHandler(setAvailabilityUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(doctorSvc, log)
	getDoctor := getDoctorHandler.NewHandler(doctorSvc, log)
	listDoctors := listDoctorsHandler.NewHandler(doctorSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	addNotes := addNotesHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request ID для всех запросов
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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список врачей по специальности
	api.HandleFunc("/doctors", listDoctors.Handle).Methods(http.MethodGet)

	// Профиль врача
	api.HandleFunc("/doctors/{doctorId:[0-9]+}", getDoctor.Handle).Methods(http.MethodGet)

	// Доступные слоты врача на ближайшие дни
	api.HandleFunc("/doctors/{doctorId:[0-9]+}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание врача ---
	// Установка ежедневного окна доступности
	protected.HandleFunc("/doctors/availability", setAvailability.Handle).Methods(http.MethodPut)

	// Просмотр своих окон доступности
	protected.HandleFunc("/doctors/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Приемы ---
	// Запись на прием
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение приема по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена приема
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Завершение приема врачом
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Заметки врача по приему
	protected.HandleFunc("/appointments/{appointmentId}/notes", addNotes.Handle).Methods(http.MethodPatch)

	// История приемов пользователя
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
