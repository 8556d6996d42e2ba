package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/org-structure-manager/internal/config"
	"github.com/org-structure-manager/internal/handler"
	"github.com/org-structure-manager/internal/migrations"
	"github.com/org-structure-manager/internal/nlp"
	"github.com/org-structure-manager/internal/repository"
	"github.com/org-structure-manager/internal/seed"
	"github.com/org-structure-manager/internal/service"
	"github.com/org-structure-manager/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Хранилище состояния
	persister, closePersister, err := openPersister(ctx, cfg)
	if err != nil {
		logger.Error("failed to open state storage",
			slog.String("backend", cfg.Store.Backend),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	defer closePersister()

	st, err := store.New(ctx, persister, logger)
	if err != nil {
		logger.Error("failed to initialize store", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация сервисов
	deptService := service.NewDepartmentService(st)
	empService := service.NewEmployeeService(st)
	reqService := service.NewRequestService(st)
	recService := service.NewRecommendationService(st, nlp.NewGenerator(nil))
	authService := service.NewAuthService(st)

	if cfg.Seed.Demo {
		err := seed.Run(ctx, seed.Services{
			Departments: deptService,
			Employees:   empService,
			Requests:    reqService,
			Auth:        authService,
		}, cfg.Seed.AdminPassword, logger)
		if err != nil {
			logger.Error("failed to seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Настройка роутера
	router := handler.NewRouter(handler.Handlers{
		Departments:     handler.NewDepartmentHandler(deptService, logger),
		Employees:       handler.NewEmployeeHandler(empService, logger),
		Requests:        handler.NewRequestHandler(reqService, logger),
		Recommendations: handler.NewRecommendationHandler(recService, logger),
		Auth:            handler.NewAuthHandler(authService, logger),
	}, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("backend", cfg.Store.Backend),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done

	// Финальное сохранение снимка
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := persister.Save(saveCtx, st.Snapshot()); err != nil {
		logger.Error("failed to save state on shutdown", slog.Any("error", err))
	}

	logger.Info("server stopped")
}

// openPersister выбирает бэкенд для снимка состояния.
// Возвращаемая функция освобождает соединения и вызывается при остановке.
func openPersister(ctx context.Context, cfg *config.Config) (store.Persister, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return repository.NewMemoryStateRepository(), noop, nil

	case config.BackendS3:
		client, err := repository.NewS3Client(ctx, repository.S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewS3StateRepository(client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.Store.Key), noop, nil

	case config.BackendPostgres:
		db, err := connectDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(db, "postgres", cfg.Store.Key)

	default:
		db, err := gorm.Open(sqlite.Open(cfg.Store.SQLitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return openSQL(db, "sqlite3", cfg.Store.Key)
	}
}

// openSQL прогоняет миграции и оборачивает соединение в репозиторий снимков
func openSQL(db *gorm.DB, dialect, key string) (store.Persister, func(), error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Запуск миграций
	if err := migrations.Up(sqlDB, dialect); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return repository.NewStateRepository(db, key), func() { sqlDB.Close() }, nil
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for range 30 {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, _ := db.DB()
			if sqlDB.Ping() == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}
