package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filebridge/core"
	"filebridge/models"
)

type PostgresProcessedDocumentsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresProcessedDocumentsRepository(db *sqlx.DB, schema string) *PostgresProcessedDocumentsRepository {
	return &PostgresProcessedDocumentsRepository{db: db, schema: schema}
}

func (r *PostgresProcessedDocumentsRepository) CreateProcessedDocument(
	ctx context.Context,
	document *models.ProcessedDocument,
) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.processed_documents (id, filename, slack_channel_id, slack_file_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, filename, slack_channel_id, slack_file_id, created_at, updated_at`, r.schema)

	err := r.db.QueryRowxContext(ctx, query, document.ID, document.Filename, document.SlackChannelID, document.SlackFileID).
		StructScan(document)
	if err != nil {
		return fmt.Errorf("failed to create processed document: %w", err)
	}

	return nil
}

func (r *PostgresProcessedDocumentsRepository) GetProcessedDocumentByID(
	ctx context.Context,
	id string,
) (*models.ProcessedDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, filename, slack_channel_id, slack_file_id, created_at, updated_at
		FROM %s.processed_documents
		WHERE id = $1`, r.schema)

	document := &models.ProcessedDocument{}
	err := r.db.GetContext(ctx, document, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get processed document: %w", err)
	}

	return document, nil
}

func (r *PostgresProcessedDocumentsRepository) GetProcessedDocumentsByChannel(
	ctx context.Context,
	channelID string,
) ([]*models.ProcessedDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, filename, slack_channel_id, slack_file_id, created_at, updated_at
		FROM %s.processed_documents
		WHERE slack_channel_id = $1
		ORDER BY created_at DESC`, r.schema)

	var documents []*models.ProcessedDocument
	err := r.db.SelectContext(ctx, &documents, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get processed documents by channel: %w", err)
	}

	return documents, nil
}
