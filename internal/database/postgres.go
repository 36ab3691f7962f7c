package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // Postgres driver

	"skillswap/internal/database/migrations"
)

// OpenPostgres opens the connection, verifies it and brings the schema to the
// latest version.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
