package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"

	"cheapticket/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

// Action names a migration direction accepted by cmd/migrate.
type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var ErrUnknownAction = errors.New("invalid direction, use 'up', 'down', 'drop' or 'step-up'")

func databaseName(config *config.Config) string {
	return config.DB.Postgres.Prefix + config.DB.Postgres.Write.Name
}

// DSN builds the golang-migrate connection string for the write node.
func DSN(config *config.Config) string {
	write := config.DB.Postgres.Write

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		write.Username,
		write.Password,
		net.JoinHostPort(write.Host, write.Port),
		databaseName(config),
		write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)
}

func step(mig *migrate.Migrate, action Action) error {
	switch action {
	case ActionUp:
		return mig.Up()
	case ActionDown:
		return mig.Steps(-1)
	case ActionStepUp:
		return mig.Steps(1)
	case ActionDrop:
		return mig.Down()
	}

	return ErrUnknownAction
}

func Runner(config *config.Config, action Action) error {
	mig, err := migrate.New(migrationSource, DSN(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := step(mig, action); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("action", string(action)).Msg("Database schema already up to date")

			return nil
		}

		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", string(action)).Uint("version", version).Bool("dirty", dirty).Msg("Database migration completed")

	return nil
}
