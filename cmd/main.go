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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/tutor-booking-service/internal/api"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	"github.com/m04kA/tutor-booking-service/internal/config"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/notification"
	courseServiceClient "github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/integrations/eventbus"
	userServiceClient "github.com/m04kA/tutor-booking-service/internal/integrations/userservice"
	"github.com/m04kA/tutor-booking-service/internal/notify"
	bookingsService "github.com/m04kA/tutor-booking-service/internal/service/bookings"
	createBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/reschedule_booking"
	respondBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/respond_booking"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
	"github.com/m04kA/tutor-booking-service/migrations"
	"github.com/m04kA/tutor-booking-service/pkg/dbmetrics"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
	"github.com/m04kA/tutor-booking-service/pkg/metrics"
	"github.com/m04kA/tutor-booking-service/pkg/txmanager"
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

	log.Info("Starting tutor-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// При выключенных метриках коллектор nil, все его методы безопасны
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, _ := migrations.Version(context.Background(), db)
		log.Info("Database migrations applied (version=%d)", version)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Booking.Retries()))

	// Инициализируем интеграционных клиентов
	var courseClient createBookingUC.CourseClient = courseServiceClient.NewClient(
		cfg.CourseService.URL,
		time.Duration(cfg.CourseService.Timeout)*time.Second,
		log,
	)
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, course cache will fall back to the catalog: %v", cfg.Cache.RedisAddr, err)
		}
		courseClient = courseServiceClient.NewCachedClient(
			courseClient,
			redisClient,
			time.Duration(cfg.Cache.CourseTTL)*time.Second,
			log,
		)
		log.Info("Course cache enabled (redis=%s, ttl=%ds)", cfg.Cache.RedisAddr, cfg.Cache.CourseTTL)
	}

	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CourseService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.CourseService.URL, cfg.CourseService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Каналы доставки уведомлений
	var targets []notify.Target
	if cfg.Notifications.StoreEnabled {
		notifications := notificationRepo.NewRepository(wrappedDB)
		targets = append(targets, notify.Target{Name: "store", Sender: notify.SenderFunc(notifications.Create)})
	}

	var publisher *eventbus.Publisher
	if cfg.Kafka.Enabled {
		publisher = eventbus.NewPublisher(eventbus.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Topic, log)
		targets = append(targets, notify.Target{Name: "kafka", Sender: notify.SenderFunc(publisher.Publish)})
		log.Info("Kafka notifications enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	dispatcher := notify.NewDispatcher(log, metricsCollector, targets...)

	// Инициализируем репозиторий, сервисы и use cases
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	validator := validation.New(cfg.Booking.MaxOptions)
	reschedulePolicy := domain.ReschedulePolicy{
		AllowConfirmed: cfg.Booking.RescheduleConfirmedAllowed(),
		AllowDeclined:  cfg.Booking.RescheduleDeclinedAllowed(),
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		courseClient,
		userClient,
		txMgr,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courseClient,
		dispatcher,
		txMgr,
		validator,
		metricsCollector,
		log,
	)
	respondBookingUseCase := respondBookingUC.NewUseCase(
		bookingRepository,
		courseClient,
		userClient,
		dispatcher,
		txMgr,
		validator,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		dispatcher,
		txMgr,
		validator,
		reschedulePolicy,
		metricsCollector,
		log,
	)

	// Настраиваем роутер
	deps := api.Deps{
		CreateBooking:     createBookingUseCase,
		RespondBooking:    respondBookingUseCase,
		RescheduleBooking: rescheduleBookingUseCase,
		Bookings:          bookingSvc,
		DB:                wrappedDB,
		Logger:            log,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metricsCollector
		deps.MetricsPath = cfg.Metrics.Path
		deps.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		log.Info("Rate limit enabled (%d req/min, burst=%d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	r := api.NewRouter(deps)

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

	// Останавливаем сбор статистики пула
	close(stopMetricsCh)

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
