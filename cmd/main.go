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

	cancelAppointmentHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/create_appointment"
	getAdminScheduleHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/get_admin_schedule"
	getAppointmentHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/get_client_appointments"
	getDailyAvailabilityHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/get_daily_availability"
	reportMaintenanceHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/report_maintenance"
	resolveMaintenanceHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/resolve_maintenance"
	updateAppointmentStatusHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/update_appointment_status"
	updateTankStatusHandler "github.com/voidfloat/FLT-SchedulingService/internal/api/handlers/update_tank_status"
	"github.com/voidfloat/FLT-SchedulingService/internal/api/middleware"
	"github.com/voidfloat/FLT-SchedulingService/internal/config"
	appointmentRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/appointment"
	serviceCatalogRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/servicecatalog"
	tankRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/tank"
	appointmentsService "github.com/voidfloat/FLT-SchedulingService/internal/service/appointments"
	tanksService "github.com/voidfloat/FLT-SchedulingService/internal/service/tanks"
	createAppointmentUC "github.com/voidfloat/FLT-SchedulingService/internal/usecase/create_appointment"
	getAdminScheduleUC "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_admin_schedule"
	getDailyAvailabilityUC "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_daily_availability"
	"github.com/voidfloat/FLT-SchedulingService/pkg/dbmetrics"
	"github.com/voidfloat/FLT-SchedulingService/pkg/logger"
	"github.com/voidfloat/FLT-SchedulingService/pkg/metrics"
	"github.com/voidfloat/FLT-SchedulingService/pkg/simpletxmanager"
	"github.com/voidfloat/FLT-SchedulingService/pkg/txmanager"
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

	log.Info("Starting FLT-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Настройки расписания центра
	schedule, err := cfg.Schedule.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Schedule: %02d:00-%02d:00, slot interval %d min, timezone %s",
		schedule.OpenHour, schedule.CloseHour, schedule.SlotIntervalMinutes, schedule.Location)

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

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		serviceCatalogRepository *serviceCatalogRepo.Repository
		tankRepository           *tankRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		serviceCatalogRepository = serviceCatalogRepo.NewRepository(wrappedDB)
		tankRepository = tankRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		serviceCatalogRepository = serviceCatalogRepo.NewRepository(db)
		tankRepository = tankRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	tanksSvc := tanksService.NewService(tankRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceCatalogRepository,
		tankRepository,
		txMgr,
		schedule,
		log,
	)

	getDailyAvailabilityUseCase := getDailyAvailabilityUC.NewUseCase(
		appointmentRepository,
		serviceCatalogRepository,
		tankRepository,
		schedule,
		log,
	)

	getAdminScheduleUseCase := getAdminScheduleUC.NewUseCase(
		appointmentRepository,
		tankRepository,
		schedule,
		log,
	)

	// Инициализируем handlers
	getDailyAvailability := getDailyAvailabilityHandler.NewHandler(getDailyAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAdminSchedule := getAdminScheduleHandler.NewHandler(getAdminScheduleUseCase, log)
	updateTankStatus := updateTankStatusHandler.NewHandler(tanksSvc, log)
	reportMaintenance := reportMaintenanceHandler.NewHandler(tanksSvc, log)
	resolveMaintenance := resolveMaintenanceHandler.NewHandler(tanksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступных слотов на день
	api.HandleFunc("/availability", getDailyAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (платёжный вебхук, completed / no_show)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Расписание дня с блоками уборки
	protected.HandleFunc("/admin/schedule", getAdminSchedule.Handle).Methods(http.MethodGet)

	// Смена живого статуса танка
	protected.HandleFunc("/tanks/{tankId}/status", updateTankStatus.Handle).Methods(http.MethodPatch)

	// Регистрация поломки танка
	protected.HandleFunc("/tanks/{tankId}/maintenance", reportMaintenance.Handle).Methods(http.MethodPost)

	// Закрытие заявки на обслуживание
	protected.HandleFunc("/maintenance/{logId}/resolve", resolveMaintenance.Handle).Methods(http.MethodPatch)

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
