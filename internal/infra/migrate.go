package infra

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// Migrate applies all pending migrations from fsys to the database
func Migrate(fsys fs.FS, databaseURI string, logger logrus.FieldLogger) error {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations - %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURI)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations - %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warnf("failed to close migration resources - %v, %v", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations - %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version - %w", err)
	}
	logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("database schema migrated")
	return nil
}
