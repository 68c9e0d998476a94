// Package postgres opens the PostgreSQL store backing the planner
package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const pingTimeout = 10 * time.Second

// Open connects to the primary database, configures the pool and
// registers any read replicas
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	log = log.Named("postgres")

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:                 NewGORMLogger(log, cfg.Database.LogLevel, cfg.Database.SlowQuery),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := registerReplicas(db, cfg); err != nil {
		// The primary serves reads too, so a broken replica list is not fatal
		log.Warn("Failed to register read replicas", zap.Error(err))
	} else if len(cfg.Database.ReadReplicas) > 0 {
		log.Info("Read replicas configured",
			zap.Int("replica_count", len(cfg.Database.ReadReplicas)),
		)
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Duration("slow_query_threshold", cfg.Database.SlowQuery),
	)

	return db, nil
}

func registerReplicas(db *gorm.DB, cfg *config.Config) error {
	if len(cfg.Database.ReadReplicas) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, len(cfg.Database.ReadReplicas))
	for i, host := range cfg.Database.ReadReplicas {
		replicas[i] = postgres.Open(cfg.ReplicaDSN(host))
	}

	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   &roundRobin{},
	}))
}

// roundRobin spreads reads evenly over the replicas
type roundRobin struct {
	next atomic.Uint64
}

func (p *roundRobin) Resolve(pools []gorm.ConnPool) gorm.ConnPool {
	n := p.next.Add(1) - 1
	return pools[n%uint64(len(pools))]
}

// NewGORMLogger routes GORM's statement log through zap. The configured
// level is one step stricter than the application level so that query
// text only appears when the database log level is debug.
func NewGORMLogger(log *zap.Logger, level string, slow time.Duration) logger.Interface {
	logLevel := logger.Silent
	switch strings.ToLower(level) {
	case "debug":
		logLevel = logger.Info
	case "info":
		logLevel = logger.Warn
	case "warn", "error":
		logLevel = logger.Error
	}

	return logger.New(
		&GORMLogWriter{logger: log},
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GORMLogWriter adapts zap to GORM's printf-style writer
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements logger.Writer
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if strings.Contains(msg, "SLOW SQL") {
		w.logger.Warn("Slow query", zap.String("detail", msg))
		return
	}
	w.logger.Debug("Query", zap.String("detail", msg))
}
