package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the schema objects the bridge needs. Statements
// are idempotent so startup can run them unconditionally.
func RunMigrations(db *sqlx.DB, schema string) error {
	statements := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.processed_documents (
				id TEXT PRIMARY KEY,
				filename TEXT NOT NULL,
				slack_channel_id TEXT NOT NULL,
				slack_file_id TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, schema),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_processed_documents_slack_file_id
			ON %s.processed_documents (slack_file_id)`, schema),
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
