package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonAvailability/internal/config"
	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/infra/cache"
	firestoreRepo "github.com/m04kA/SMC-SalonAvailability/internal/infra/firestore"
	appointmentRepo "github.com/m04kA/SMC-SalonAvailability/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-SalonAvailability/internal/infra/storage/branch"
	calendarRepo "github.com/m04kA/SMC-SalonAvailability/internal/infra/storage/calendar"
	scheduleRepo "github.com/m04kA/SMC-SalonAvailability/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/logger"
	"github.com/m04kA/SMC-SalonAvailability/pkg/metrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/txmanager"
)

type scheduleSource interface {
	GetActiveScheduleConfiguration(ctx context.Context, branchID string, date time.Time) (*domain.ScheduleConfiguration, error)
}

type appointmentStore interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, reason, actor *string) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного backend
type storage struct {
	branches     cache.BranchSource
	schedules    scheduleSource
	appointments appointmentStore
	txManager    txManager
	ping         func(ctx context.Context) error
	close        func()
}

// postgresBranches объединяет репозитории филиалов и календаря в один источник для кэша
type postgresBranches struct {
	branches *branchRepo.Repository
	calendar *calendarRepo.Repository
}

func (p *postgresBranches) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	return p.branches.GetBranch(ctx, id)
}

func (p *postgresBranches) GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error) {
	return p.calendar.GetBranchCalendar(ctx, branchID)
}

// openStorage подключается к выбранному backend и, если включен redis, оборачивает филиалы кэшем
func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopMetricsCh <-chan struct{}) (*storage, error) {
	var (
		st  *storage
		err error
	)

	switch cfg.Storage.Backend {
	case config.BackendFirestore:
		st, err = openFirestore(ctx, cfg, log)
	default:
		st, err = openPostgres(cfg, m, log, stopMetricsCh)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.Redis.Enabled {
		return st, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		// Без кэша сервис работает, только медленнее
		log.Warn("Redis is unavailable at %s, branch cache will degrade to storage: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Connected to redis at %s (cache_ttl=%s)", cfg.Redis.Addr, cfg.CacheTTL())
	}

	st.branches = cache.NewBranchCache(st.branches, client, cfg.CacheTTL(), log)
	closeStorage := st.close
	st.close = func() {
		_ = client.Close()
		closeStorage()
	}
	return st, nil
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopMetricsCh <-chan struct{}) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopMetricsCh)
	log.Info("Database metrics collection started")

	return &storage{
		branches: &postgresBranches{
			branches: branchRepo.NewRepository(wrappedDB),
			calendar: calendarRepo.NewRepository(wrappedDB),
		},
		schedules:    scheduleRepo.NewRepository(wrappedDB),
		appointments: appointmentRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		ping:         db.PingContext,
		close:        func() { _ = db.Close() },
	}, nil
}

func openFirestore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	client, err := firestoreRepo.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to firestore (project=%s)", cfg.Firestore.ProjectID)

	repo := firestoreRepo.NewRepository(client, cfg.Location())

	return &storage{
		branches:     repo,
		schedules:    repo,
		appointments: repo,
		txManager:    firestoreRepo.NewTransactionManager(client),
		ping:         repo.Ping,
		close:        func() { _ = client.Close() },
	}, nil
}
