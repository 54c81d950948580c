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

	createBookingHandler "github.com/open2agenda/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/open2agenda/booking-service/internal/api/handlers/get_available_slots"
	getTenantHandler "github.com/open2agenda/booking-service/internal/api/handlers/get_tenant"
	getTenantBookingsHandler "github.com/open2agenda/booking-service/internal/api/handlers/get_tenant_bookings"
	listTenantsHandler "github.com/open2agenda/booking-service/internal/api/handlers/list_tenants"
	updateBookingStatusHandler "github.com/open2agenda/booking-service/internal/api/handlers/update_booking_status"
	updateServicesHandler "github.com/open2agenda/booking-service/internal/api/handlers/update_services"
	"github.com/open2agenda/booking-service/internal/api/middleware"
	"github.com/open2agenda/booking-service/internal/config"
	bookingRepo "github.com/open2agenda/booking-service/internal/infra/storage/booking"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
	"github.com/open2agenda/booking-service/internal/integrations/assistant"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
	availabilityService "github.com/open2agenda/booking-service/internal/service/availability"
	bookingsService "github.com/open2agenda/booking-service/internal/service/bookings"
	catalogService "github.com/open2agenda/booking-service/internal/service/catalog"
	createBookingUC "github.com/open2agenda/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/open2agenda/booking-service/internal/usecase/get_available_slots"
	"github.com/open2agenda/booking-service/pkg/dbmetrics"
	"github.com/open2agenda/booking-service/pkg/logger"
	"github.com/open2agenda/booking-service/pkg/metrics"
	"github.com/open2agenda/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Integration clients. Tenant credentials are passed into every call, so
	// the clients themselves are tenant-agnostic.
	var calendarMetrics googlecalendar.MetricsRecorder
	if metricsCollector != nil {
		calendarMetrics = metricsCollector
	}
	calendarClient := googlecalendar.NewClient(
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		int64(cfg.Calendar.MaxResults),
		log,
		calendarMetrics,
	)
	mailClient := emailjs.NewClient(
		cfg.Email.BaseURL,
		time.Duration(cfg.Email.Timeout)*time.Second,
		log,
	)
	assistantClient := assistant.NewClient(
		cfg.Assistant.BaseURL,
		cfg.Assistant.Model,
		cfg.Assistant.APIKey,
		time.Duration(cfg.Assistant.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (calendar timeout=%ds, email=%s, assistant model=%s)",
		cfg.Calendar.Timeout, cfg.Email.BaseURL, cfg.Assistant.Model)

	var (
		bookingRepository *bookingRepo.Repository
		tenantRepository  *tenantRepo.Repository
		txMgr             *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		tenantRepository = tenantRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(&dbmetrics.SQLBeginner{DB: db})
	}

	// Services.
	aggregator := availabilityService.NewAggregator(calendarClient, log)
	resolver := availabilityService.NewResolver(aggregator, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		tenantRepository,
		calendarClient,
		mailClient,
		log,
	)
	catalogSvc := catalogService.NewService(tenantRepository, log)

	// Use cases.
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		tenantRepository,
		bookingRepository,
		resolver,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		tenantRepository,
		bookingRepository,
		resolver,
		calendarClient,
		mailClient,
		assistantClient,
		txMgr,
		log,
	)

	// Handlers.
	getTenant := getTenantHandler.NewHandler(catalogSvc, log)
	listTenants := listTenantsHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateServices := updateServicesHandler.NewHandler(catalogSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public widget routes.
	api.HandleFunc("/tenants/{subdomain}", getTenant.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{subdomain}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{subdomain}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Admin routes. Identity arrives as forwarded headers from the auth layer.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/tenants", listTenants.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/services", updateServices.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
