package migrations

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Up applies pending goose migrations from dir against the postgres DSN.
func Up(log *slog.Logger, dsn, dir string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("migrations: open: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	log.Info("database migrations applied")

	return nil
}
