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
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/Raorakshith/smartparking/internal/api/handlers/cancel_booking"
	checkoutBookingHandler "github.com/Raorakshith/smartparking/internal/api/handlers/checkout_booking"
	confirmBookingHandler "github.com/Raorakshith/smartparking/internal/api/handlers/confirm_booking"
	createHoldHandler "github.com/Raorakshith/smartparking/internal/api/handlers/create_hold"
	getAvailableSpotsHandler "github.com/Raorakshith/smartparking/internal/api/handlers/get_available_spots"
	getBookingHandler "github.com/Raorakshith/smartparking/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/Raorakshith/smartparking/internal/api/handlers/get_dashboard"
	getRevenueReportHandler "github.com/Raorakshith/smartparking/internal/api/handlers/get_revenue_report"
	getUserBookingsHandler "github.com/Raorakshith/smartparking/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/Raorakshith/smartparking/internal/api/handlers/list_bookings"
	listLotsHandler "github.com/Raorakshith/smartparking/internal/api/handlers/list_lots"
	manageLotsHandler "github.com/Raorakshith/smartparking/internal/api/handlers/manage_lots"
	manageUsersHandler "github.com/Raorakshith/smartparking/internal/api/handlers/manage_users"
	upsertProfileHandler "github.com/Raorakshith/smartparking/internal/api/handlers/upsert_profile"
	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/config"
	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	lotRepo "github.com/Raorakshith/smartparking/internal/infra/storage/lot"
	"github.com/Raorakshith/smartparking/internal/infra/storage/migrator"
	userRepo "github.com/Raorakshith/smartparking/internal/infra/storage/user"
	"github.com/Raorakshith/smartparking/internal/scheduler"
	bookingsService "github.com/Raorakshith/smartparking/internal/service/bookings"
	lotsService "github.com/Raorakshith/smartparking/internal/service/lots"
	usersService "github.com/Raorakshith/smartparking/internal/service/users"
	checkoutBookingUC "github.com/Raorakshith/smartparking/internal/usecase/checkout_booking"
	confirmBookingUC "github.com/Raorakshith/smartparking/internal/usecase/confirm_booking"
	createHoldUC "github.com/Raorakshith/smartparking/internal/usecase/create_hold"
	getAvailableSpotsUC "github.com/Raorakshith/smartparking/internal/usecase/get_available_spots"
	getDashboardUC "github.com/Raorakshith/smartparking/internal/usecase/get_dashboard"
	getRevenueReportUC "github.com/Raorakshith/smartparking/internal/usecase/get_revenue_report"
	"github.com/Raorakshith/smartparking/migrations"
	"github.com/Raorakshith/smartparking/pkg/clock"
	"github.com/Raorakshith/smartparking/pkg/dbmetrics"
	"github.com/Raorakshith/smartparking/pkg/logger"
	"github.com/Raorakshith/smartparking/pkg/metrics"
	"github.com/Raorakshith/smartparking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting smartparking...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil - выключены, все потребители это допускают)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
		cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrator.New(migrations.FS, log).Up(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	go wrappedDB.CollectPoolStats(ctx, dbmetrics.DefaultPoolStatsInterval)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	lotRepository := lotRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	campusClock := clock.New(cfg.Booking.Location())

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		lotRepository,
		txMgr,
		metricsCollector,
		campusClock,
		log,
	)
	lotSvc := lotsService.NewService(lotRepository, bookingRepository, txMgr, log)
	userSvc := usersService.NewService(userRepository, log)

	// Инициализируем use cases
	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		lotRepository,
		txMgr,
		metricsCollector,
		campusClock,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		txMgr,
		metricsCollector,
		campusClock,
		log,
	)
	checkoutBookingUseCase := checkoutBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		metricsCollector,
		campusClock,
		log,
	)
	getAvailableSpotsUseCase := getAvailableSpotsUC.NewUseCase(
		bookingRepository,
		lotRepository,
		campusClock,
		log,
	)
	getDashboardUseCase := getDashboardUC.NewUseCase(
		bookingRepository,
		lotRepository,
		userRepository,
		txMgr,
		campusClock,
		cfg.Booking.DashboardRecentLimit,
		log,
	)
	getRevenueReportUseCase := getRevenueReportUC.NewUseCase(
		bookingRepository,
		lotRepository,
		txMgr,
		campusClock,
		log,
	)

	// Инициализируем handlers
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	checkoutBooking := checkoutBookingHandler.NewHandler(checkoutBookingUseCase, log)
	getAvailableSpots := getAvailableSpotsHandler.NewHandler(getAvailableSpotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listLots := listLotsHandler.NewHandler(lotSvc, false, log)
	listAllLots := listLotsHandler.NewHandler(lotSvc, true, log)
	manageLots := manageLotsHandler.NewHandler(lotSvc, log)
	upsertProfile := upsertProfileHandler.NewHandler(userSvc, log)
	manageUsers := manageUsersHandler.NewHandler(userSvc, log)
	getDashboard := getDashboardHandler.NewHandler(getDashboardUseCase, log)
	getRevenueReport := getRevenueReportHandler.NewHandler(getRevenueReportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют Bearer токен
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Профиль ---
	api.HandleFunc("/users/me", upsertProfile.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/users/me", upsertProfile.Handle).Methods(http.MethodPut)
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Парковки ---
	api.HandleFunc("/lots", listLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}", listLots.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/available-spots", getAvailableSpots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings/holds", createHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/qr", getBooking.HandleQR).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/checkout", checkoutBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (роль admin из токена)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/revenue", getRevenueReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/lots", listAllLots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/lots", manageLots.Create).Methods(http.MethodPost)
	admin.HandleFunc("/lots/{lotId}", listAllLots.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/lots/{lotId}", manageLots.Update).Methods(http.MethodPut)
	admin.HandleFunc("/lots/{lotId}", manageLots.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/lots/{lotId}/active", manageLots.SetActive).Methods(http.MethodPatch)

	admin.HandleFunc("/users", manageUsers.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/role", manageUsers.UpdateRole).Methods(http.MethodPatch)

	// Фоновая очистка просроченных удержаний
	sweeper := scheduler.New(bookingSvc, cfg.Booking.SweepInterval(), log)
	go sweeper.Start(ctx)

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

	// Останавливаем планировщик и сбор статистики пула
	stop()

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
