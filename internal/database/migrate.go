package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pfjetdev/pfgrouptravel/internal/database/migrations"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// Migrate applies every pending embedded migration
func Migrate(ctx context.Context, db *sql.DB, logger logrus.FieldLogger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		logger.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"file":     r.Source.Path,
			"duration": r.Duration.String(),
		}).Info("Applied migration")
	}
	return nil
}
