package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// goose's sqlite dialect name predates the modernc driver rename.
const sqliteDialect = "sqlite3"

// Up applies all pending schema migrations from migrationsDir. The server
// runs it on every dev startup; seeding assumes the schema is current.
func Up(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", migrationsDir, err)
	}

	return nil
}
