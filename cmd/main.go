package main

import (
	"context"
	"database/sql"
	"errors"
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
	"golang.org/x/sync/errgroup"

	cancelReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/check_availability"
	confirmReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/create_reservation"
	createSpaceHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/create_space"
	getReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_reservation"
	getSpaceHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_space"
	getSpaceReservationsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_space_reservations"
	getUserReservationsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_user_reservations"
	runLifecycleTickHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/run_lifecycle_tick"
	updateSpaceHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/update_space"
	validateCandidateHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/validate_candidate"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/config"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/events"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/lock"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
	reservationsService "github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	spacesService "github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces"
	advanceStatusesUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
	checkAvailabilityUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
	validateCandidateUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/validate_candidate"
	lifecycleWorker "github.com/m04kA/SMC-SpaceBookingService/internal/worker/lifecycle"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

// eventPublisher публикатор событий, закрываемый при остановке
type eventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

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

	log.Info("Starting SMC-SpaceBookingService...")
	log.Info("Configuration loaded from config.toml")

	location := cfg.Engine.Location()
	log.Info("Calendar time zone: %s, fully booked threshold: %d hours", location, cfg.Engine.FullyBookedHours)

	// Инициализируем метрики (если включены)
	// nil коллектор отключает запись метрик во всех компонентах
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории и transaction manager
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	spaceRepository := spaceRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Публикация событий в RabbitMQ (best effort)
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Domain events are published to exchange %q", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Блокировка тика жизненного цикла в Redis, чтобы тикала одна реплика
	var locker lifecycleWorker.Locker = lock.NoopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping Redis: %v", err)
		}

		locker = lock.NewRedisLocker(redisClient, cfg.Redis.KeyPrefix)
		log.Info("Lifecycle lock enabled (redis=%s)", cfg.Redis.Addr)
	}

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		checkAvailabilityUC.Options{
			FullyBookedHours: cfg.Engine.FullyBookedHours,
			MaxRangeDays:     cfg.Engine.MaxRangeDays,
			Location:         location,
		},
		log,
	)

	validateCandidateUseCase := validateCandidateUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		metricsCollector,
		validateCandidateUC.Options{
			FullyBookedHours: cfg.Engine.FullyBookedHours,
			Location:         location,
		},
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		txMgr,
		publisher,
		metricsCollector,
		createReservationUC.Options{
			FullyBookedHours: cfg.Engine.FullyBookedHours,
			Location:         location,
		},
		log,
	)

	advanceStatusesUseCase := advanceStatusesUC.NewUseCase(
		reservationRepository,
		lifecycle.NewGuard(),
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		spaceRepository,
		txMgr,
		publisher,
		reservationsService.Options{
			FullyBookedHours: cfg.Engine.FullyBookedHours,
			Location:         location,
		},
		log,
	)

	spaceValidator, err := spacesService.NewValidator()
	if err != nil {
		log.Fatal("Failed to initialize validator: %v", err)
	}
	spaceSvc := spacesService.NewService(spaceRepository, txMgr, spaceValidator, log)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, location, log)
	validateCandidate := validateCandidateHandler.NewHandler(validateCandidateUseCase, location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, location, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getSpaceReservations := getSpaceReservationsHandler.NewHandler(reservationSvc, location, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	createSpace := createSpaceHandler.NewHandler(spaceSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	updateSpace := updateSpaceHandler.NewHandler(spaceSvc, log)
	runLifecycleTick := runLifecycleTickHandler.NewHandler(advanceStatusesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Помещения ---
	api.HandleFunc("/spaces", createSpace.Handle).Methods(http.MethodPost)
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}", updateSpace.Handle).Methods(http.MethodPut)

	// Календарь доступности и проверка кандидата
	api.HandleFunc("/spaces/{spaceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/reservations/validate", validateCandidate.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/spaces/{spaceId}/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/spaces/{spaceId}/reservations", getSpaceReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Жизненный цикл (для операторов) ---
	api.HandleFunc("/lifecycle/tick", runLifecycleTick.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Ожидаем сигнал завершения
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})

	// Воркер жизненного цикла останавливается вместе с сервером и дожидается текущего тика
	if cfg.Lifecycle.Enabled {
		worker := lifecycleWorker.NewWorker(
			advanceStatusesUseCase,
			locker,
			cfg.Lifecycle.TickInterval(),
			cfg.Lifecycle.LockTTL(),
			log,
		)
		g.Go(func() error {
			worker.Run(gCtx)
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("%v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
