package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/get_available_slots"
	stylistAvailabilityHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/stylist_availability"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/update_appointment_status"
	validateTimeHandler "github.com/m04kA/SMC-SalonAvailability/internal/api/handlers/validate_time"
	"github.com/m04kA/SMC-SalonAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-SalonAvailability/internal/config"
	appointmentsService "github.com/m04kA/SMC-SalonAvailability/internal/service/appointments"
	checkStylistUC "github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
	createAppointmentUC "github.com/m04kA/SMC-SalonAvailability/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonAvailability/internal/usecase/get_available_slots"
	validateTimeUC "github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
	"github.com/m04kA/SMC-SalonAvailability/pkg/logger"
	"github.com/m04kA/SMC-SalonAvailability/pkg/metrics"
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

	log.Info("Starting SMC-SalonAvailability...")
	log.Info("Configuration loaded from config.toml (backend=%s, timezone=%s)", cfg.Storage.Backend, cfg.Booking.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики создаются всегда; наружу отдаются только если включены
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registry)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к хранилищу
	st, err := openStorage(ctx, cfg, metricsCollector, log, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer st.close()

	loc := cfg.Location()

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		st.branches,
		st.branches,
		st.schedules,
		st.appointments,
		metricsCollector,
		loc,
		log,
	)
	checkStylistUseCase := checkStylistUC.NewUseCase(st.appointments, loc, log)
	validateTimeUseCase := validateTimeUC.NewUseCase(st.branches, st.branches, st.schedules, loc, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		st.appointments,
		validateTimeUseCase,
		checkStylistUseCase,
		st.txManager,
		log,
	)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(st.appointments, st.txManager, metricsCollector, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateTime := validateTimeHandler.NewHandler(validateTimeUseCase, log)
	stylistAvailability := stylistAvailabilityHandler.NewHandler(checkStylistUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, loc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Проверка живости вместе с хранилищем
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.ping(pingCtx); err != nil {
			log.Warn("GET /healthz - Storage ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Actor)

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies, log)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		api.Use(limiter.Middleware)
		go limiter.RunCleanup(time.Minute, stopMetricsCh)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trusted_proxies=%v)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies)
	}

	// --- Доступность ---
	api.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/validate-time", validateTime.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists/{stylistId}/availability", stylistAvailability.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Автоотмена зависших pending записей
	if cfg.Booking.AutoCancelEnabled {
		go appointmentSvc.RunAutoCancel(ctx, cfg.AutoCancelInterval())
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	log.Info("Shutting down server...")

	// Останавливаем сбор метрик пула и очистку лимитеров
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
