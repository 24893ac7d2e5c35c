package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/SlavaShagalov/user-list/pkg/migrations"
)

// Logger discards everything; tests only care about behaviour.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenSQLite creates a migrated SQLite database in a temporary directory.
// It is closed through t.Cleanup.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.db")
	if err := migrations.Do(migrations.DatabaseURL("sqlite3", path), MigrationsDir(t, "sqlite3"), Logger()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MigrationsDir locates migrations/<driver> from the module root.
func MigrationsDir(t *testing.T, driver string) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations", driver)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("module root not found")
		}
		dir = parent
	}
}

type SeedUser struct {
	Username   string
	Roles      []string
	Attributes map[string]string
}

// Seed inserts users with ids assigned in slice order starting at 1.
func Seed(t *testing.T, db *sqlx.DB, users ...SeedUser) {
	t.Helper()
	ctx := context.Background()

	for i, u := range users {
		id := int64(i + 1)
		email := fmt.Sprintf("%s@example.com", u.Username)
		if _, err := db.ExecContext(ctx, `INSERT INTO users (id, username, email) VALUES (?, ?, ?)`, id, u.Username, email); err != nil {
			t.Fatalf("seed user %s: %v", u.Username, err)
		}
		for _, role := range u.Roles {
			if _, err := db.ExecContext(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`, id, role); err != nil {
				t.Fatalf("seed role %s of %s: %v", role, u.Username, err)
			}
		}
		for key, value := range u.Attributes {
			if _, err := db.ExecContext(ctx, `INSERT INTO user_meta (user_id, meta_key, meta_value) VALUES (?, ?, ?)`, id, key, value); err != nil {
				t.Fatalf("seed meta %s of %s: %v", key, u.Username, err)
			}
		}
	}
}
