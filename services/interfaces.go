package services

import (
	"context"

	"github.com/samber/mo"

	"filebridge/models"
)

// DocumentsRepository is the persistence boundary for processed-document records
type DocumentsRepository interface {
	CreateProcessedDocument(ctx context.Context, document *models.ProcessedDocument) error
	GetProcessedDocumentByID(ctx context.Context, id string) (*models.ProcessedDocument, error)
	GetProcessedDocumentsByChannel(ctx context.Context, channelID string) ([]*models.ProcessedDocument, error)
}

// DocumentsService records which files the pipeline has processed
type DocumentsService interface {
	CreateProcessedDocument(
		ctx context.Context,
		filename, slackChannelID, slackFileID string,
	) (*models.ProcessedDocument, error)
	GetProcessedDocumentByID(ctx context.Context, id string) (mo.Option[*models.ProcessedDocument], error)
	GetProcessedDocumentsByChannel(ctx context.Context, channelID string) ([]*models.ProcessedDocument, error)
}
