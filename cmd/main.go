package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	confirmPartySizeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_party_size"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getPendingBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_pending_booking"
	getUserHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user"
	getUserBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	listCategoriesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_categories"
	registerUserHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/register_user"
	selectTimeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/select_time"
	setLanguageHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/set_language"
	setPhoneHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/set_phone"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mongostore"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	categoryRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/category"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/telegram"
	"github.com/m04kA/SMC-ReservationService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	usersService "github.com/m04kA/SMC-ReservationService/internal/service/users"
	confirmPartySizeUC "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_party_size"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	selectDateUC "github.com/m04kA/SMC-ReservationService/internal/usecase/select_date"
	selectTimeUC "github.com/m04kA/SMC-ReservationService/internal/usecase/select_time"
	sendRemindersUC "github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/slotlock"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level,
		logger.WithService(cfg.Metrics.ServiceName),
		logger.WithTextFormat(cfg.IsDevelopment()),
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService (env=%s)...", cfg.App.Env)
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

	grid, err := domain.NewSlotGrid(cfg.Slots.Open, cfg.Slots.Close, cfg.Slots.IntervalMinutes)
	if err != nil {
		log.Fatal("Invalid slot grid: %v", err)
	}
	log.Info("Slot grid: %s-%s every %d minutes (%d slots)",
		cfg.Slots.Open, cfg.Slots.Close, cfg.Slots.IntervalMinutes, len(grid.Slots()))

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

	// Без коллектора обёртка не собирает метрики
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	categoryRepository := categoryRepo.NewRepository(wrappedDB)

	healthChecks := map[string]healthHandler.Pinger{"postgres": wrappedDB}

	var userRepository usersService.UserRepository
	var mongoManager *mongostore.Manager

	switch cfg.Users.Backend {
	case config.UsersBackendMongo:
		connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
		mongoManager, err = mongostore.NewManager(connectCtx, cfg.Users.MongoURI, cfg.Users.MongoDB, cfg.Users.MongoCollection)
		if err != nil {
			cancelConnect()
			log.Fatal("Failed to connect to MongoDB: %v", err)
		}
		if err := mongoManager.EnsureIndexes(connectCtx); err != nil {
			cancelConnect()
			log.Fatal("Failed to create MongoDB indexes: %v", err)
		}
		cancelConnect()

		userRepository = mongostore.NewUserRepository(mongoManager.Users())
		healthChecks["mongo"] = mongoManager
		log.Info("Users are stored in MongoDB (db=%s, collection=%s)", cfg.Users.MongoDB, cfg.Users.MongoCollection)
	default:
		userRepository = userRepo.NewRepository(wrappedDB)
		log.Info("Users are stored in Postgres")
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(categoryRepository, txManager, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	userSvc := usersService.NewService(userRepository, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	seeded, err := catalogSvc.Seed(seedCtx)
	cancelSeed()
	if err != nil {
		log.Fatal("Failed to seed categories: %v", err)
	}
	log.Info("Categories ready (seeded=%t)", seeded)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		categoryRepository,
		grid,
		log,
	)

	selectDateUseCase := selectDateUC.NewUseCase(
		bookingRepository,
		categoryRepository,
		getAvailableSlotsUseCase,
		txManager,
		location,
		log,
	)

	selectTimeUseCase := selectTimeUC.NewUseCase(
		bookingRepository,
		txManager,
		grid,
		location,
		log,
	)

	confirmPartySizeUseCase := confirmPartySizeUC.NewUseCase(
		bookingRepository,
		getAvailableSlotsUseCase,
		slotlock.New(),
		txManager,
		metricsCollector,
		log,
	)

	// Напоминания работают только с токеном бота
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	var schedulerWG sync.WaitGroup

	switch {
	case !cfg.Reminder.Enabled:
		log.Info("Reminders are disabled")
	case cfg.Telegram.Token == "":
		log.Warn("Reminders are enabled but telegram token is empty, scheduler is not started")
	default:
		telegramClient, err := telegram.NewClient(cfg.Telegram.Token, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram client: %v", err)
		}

		sendRemindersUseCase := sendRemindersUC.NewUseCase(
			bookingRepository,
			userSvc,
			telegramClient,
			metricsCollector,
			sendRemindersUC.Config{
				Lead:     cfg.Reminder.Lead(),
				Window:   cfg.Reminder.Window(),
				Location: location,
			},
			log,
		)

		reminderScheduler := scheduler.New(sendRemindersUseCase, cfg.Reminder.Period(), log)
		schedulerWG.Add(1)
		go func() {
			defer schedulerWG.Done()
			reminderScheduler.Start(schedulerCtx)
		}()
		log.Info("Reminder scheduler started (period=%s, lead=%s, window=%s)",
			cfg.Reminder.Period(), cfg.Reminder.Lead(), cfg.Reminder.Window())
	}

	// Инициализируем handlers
	registerUser := registerUserHandler.NewHandler(userSvc, log)
	getUser := getUserHandler.NewHandler(userSvc, log)
	setPhone := setPhoneHandler.NewHandler(userSvc, log)
	setLanguage := setLanguageHandler.NewHandler(userSvc, log)
	listCategories := listCategoriesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(selectDateUseCase, log)
	selectTime := selectTimeHandler.NewHandler(selectTimeUseCase, log)
	confirmPartySize := confirmPartySizeHandler.NewHandler(confirmPartySizeUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getPendingBooking := getPendingBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(healthChecks, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log), middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация пользователя при первом обращении к боту
	api.HandleFunc("/users", registerUser.Handle).Methods(http.MethodPost)

	// Каталог категорий и свободные слоты
	api.HandleFunc("/categories", listCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/categories/{categoryId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Пользователь ---
	protected.HandleFunc("/users/{userId}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/phone", setPhone.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/language", setLanguage.Handle).Methods(http.MethodPut)

	// --- Диалог бронирования: дата, время, количество гостей ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/time", selectTime.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/party-size", confirmPartySize.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings/pending", getPendingBooking.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// Планировщик дожидается текущего цикла рассылки
	stopScheduler()
	schedulerWG.Wait()
	log.Info("Reminder scheduler stopped")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if mongoManager != nil {
		if err := mongoManager.Close(shutdownCtx); err != nil {
			log.Error("Failed to disconnect from MongoDB: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
