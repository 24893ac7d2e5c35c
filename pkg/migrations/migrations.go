package migrations

import (
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DatabaseURL converts a sqlx driver name and connection string into a migrate
// database URL. Postgres connection strings are expected in URL form already.
func DatabaseURL(driverName, connectionString string) string {
	switch driverName {
	case "sqlite3":
		if strings.HasPrefix(connectionString, "sqlite3://") {
			return connectionString
		}
		return "sqlite3://" + connectionString
	default:
		return connectionString
	}
}

// Do applies every pending migration found in migrationsPath.
func Do(databaseURL, migrationsPath string, logger *slog.Logger) (err error) {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create migrate")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = multierr.Combine(err, srcErr, dbErr)
	}()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("migrations: no change")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "read migration version")
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	return nil
}
