package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"cheapticket/config"
	"cheapticket/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnection = 10
	maxOpenConnection = 10
)

// Connection holds the read replica and the primary. Reads may lag writes.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: pg.MaxRetry, wait: time.Duration(pg.RetryWaitTime) * time.Second}

	return &Connection{
		Read:  connect("read", DataSource(pg.Read, pg.Prefix), retry),
		Write: connect("write", DataSource(pg.Write, pg.Prefix), retry),
	}
}

// DataSource renders a lib/pq connection URL for the node. The prefix is
// prepended to the database name so test runs can use their own database.
func DataSource(node config.PostgresNode, prefix string) string {
	query := url.Values{}
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// IsUniqueViolation reports whether err carries a postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// IsForeignKeyViolation reports whether err carries a postgres foreign key error.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation
}

// Ping checks both pools, used by the health endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errors.New("database connection is not established")
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("ping read database: %w", err)
	}

	return nil
}

// Close releases both pools.
func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

// connect dials until a connection succeeds or the attempts run out, in
// which case it returns nil. At least one attempt is always made.
func connect(name, dsn string, retry retryPolicy) *sqlx.DB {
	attempts := max(retry.attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnection)
			db.SetMaxOpenConns(maxOpenConnection)

			log.Info().Str("name", name).Msg("Connected to database")

			return db
		}

		log.Error().Err(err).Str("name", name).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < attempts {
			time.Sleep(retry.wait)
		}
	}

	return nil
}
