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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	getBookingHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/get_booking"
	getHierarchyBreakdownHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/get_hierarchy_breakdown"
	getOwnerBookingsHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/get_owner_bookings"
	getPricingHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/get_pricing"
	moderateBookingHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/moderate_booking"
	submitBookingHandler "github.com/m04kA/SMC-AdsBookingService/internal/api/handlers/submit_booking"
	"github.com/m04kA/SMC-AdsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AdsBookingService/internal/config"
	"github.com/m04kA/SMC-AdsBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/booking"
	priceRateRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/pricerate"
	assetStoreClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/assetstore"
	geoServiceClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/geoservice"
	walletServiceClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/walletservice"
	bookingsService "github.com/m04kA/SMC-AdsBookingService/internal/service/bookings"
	pricingService "github.com/m04kA/SMC-AdsBookingService/internal/service/pricing"
	getPricingUC "github.com/m04kA/SMC-AdsBookingService/internal/usecase/get_pricing"
	submitBookingUC "github.com/m04kA/SMC-AdsBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-AdsBookingService/migrations"
	"github.com/m04kA/SMC-AdsBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdsBookingService/pkg/logger"
	"github.com/m04kA/SMC-AdsBookingService/pkg/metrics"
	"github.com/m04kA/SMC-AdsBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AdsBookingService/pkg/txmanager"
)

func main() {
	// .env опционален: локальная разработка
	_ = godotenv.Load()

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

	log.Info("Starting SMC-AdsBookingService...")
	log.Info("Configuration loaded from %s", configPath)

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

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "."); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем интеграционных клиентов
	walletClient := walletServiceClient.NewClient(
		cfg.WalletService.URL,
		time.Duration(cfg.WalletService.Timeout)*time.Second,
		log,
	)
	geoClient := geoServiceClient.NewClient(
		cfg.GeoService.URL,
		time.Duration(cfg.GeoService.Timeout)*time.Second,
		log,
	)
	assetClient := assetStoreClient.NewClient(
		cfg.AssetStore.URL,
		time.Duration(cfg.AssetStore.Timeout)*time.Second,
		log,
	)
	if cfg.Metrics.Enabled {
		walletClient.SetTransport(metricsCollector.InstrumentTransport("wallet_service", nil))
		geoClient.SetTransport(metricsCollector.InstrumentTransport("geo_service", nil))
		assetClient.SetTransport(metricsCollector.InstrumentTransport("asset_store", nil))
	}
	log.Info("Integration clients initialized (WalletService=%s, GeoService=%s, AssetStore=%s)",
		cfg.WalletService.URL, cfg.GeoService.URL, cfg.AssetStore.URL)

	// Кэш календаря цен (опционален)
	var pricingCache *cache.PricingCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		pricingCache = cache.NewPricingCache(
			redisClient,
			time.Duration(cfg.Redis.PricingTTLSeconds)*time.Second,
			log,
		)
		log.Info("Pricing cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.PricingTTLSeconds)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		rateRepository    *priceRateRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rateRepository = priceRateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		rateRepository = priceRateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(geoClient, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		walletClient,
		txMgr,
		log,
	)

	// Инициализируем use cases.
	// Интерфейсы кэша принимают nil только как нетипизированный nil,
	// поэтому прокидываем указатель через явную проверку.
	var (
		pricingCacheReader      getPricingUC.PricingCache
		pricingCacheInvalidator submitBookingUC.PricingCacheInvalidator
	)
	if pricingCache != nil {
		pricingCacheReader = pricingCache
		pricingCacheInvalidator = pricingCache
	}

	getPricingUseCase := getPricingUC.NewUseCase(
		rateRepository,
		bookingRepository,
		pricingSvc,
		pricingCacheReader,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		rateRepository,
		pricingSvc,
		walletClient,
		assetClient,
		pricingCacheInvalidator,
		txMgr,
		time.Duration(cfg.Booking.ReserveTimeoutSeconds)*time.Second,
		log,
	)

	// Инициализируем handlers
	getPricing := getPricingHandler.NewHandler(getPricingUseCase, log)
	getHierarchyBreakdown := getHierarchyBreakdownHandler.NewHandler(pricingSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	moderateBooking := moderateBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь цен слота (окно бронирования, множитель, занятость)
	api.HandleFunc("/pricing", getPricing.Handle).Methods(http.MethodGet)

	// Расшифровка множителя по иерархии офисов
	api.HandleFunc("/hierarchy/breakdown", getHierarchyBreakdown.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Owner-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Оформление бронирования (multipart: payload + asset)
	protected.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Модерация бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", moderateBooking.Handle).Methods(http.MethodPatch)

	// История бронирований владельца
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

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
