package database

import (
	"context"
	"fmt"
	"time"

	"github.com/CUknot/meetroom/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres pool and pings it, retrying up to attempts times
// with delay between tries. The database container is often still starting
// when the service boots.
func Connect(ctx context.Context, dsn string, attempts int, delay time.Duration) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			err = ping(ctx, db)
		}
		if err == nil {
			log.Info().Str("module", "database").Int("attempt", i).Msg("database connection established")
			return db, nil
		}
		lastErr = err

		log.Warn().Str("module", "database").Err(err).
			Int("attempt", i).Int("of", attempts).
			Msg("database not ready")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("database: connect after %d attempts: %w", attempts, lastErr)
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Migrate automatically migrates the database schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Participant{},
		&models.Message{},
		&models.Recording{},
	)
	if err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	log.Info().Str("module", "database").Msg("database migration completed")
	return nil
}
