package documents

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samber/mo"

	"filebridge/core"
	"filebridge/models"
	"filebridge/services"
)

type DocumentsService struct {
	documentsRepo services.DocumentsRepository
}

func NewDocumentsService(repo services.DocumentsRepository) *DocumentsService {
	return &DocumentsService{
		documentsRepo: repo,
	}
}

func (s *DocumentsService) CreateProcessedDocument(
	ctx context.Context,
	filename, slackChannelID, slackFileID string,
) (*models.ProcessedDocument, error) {
	log.Printf("📋 Starting to create processed document for file: %s in channel: %s", filename, slackChannelID)

	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	if slackChannelID == "" {
		return nil, fmt.Errorf("slack_channel_id cannot be empty")
	}
	if slackFileID == "" {
		return nil, fmt.Errorf("slack_file_id cannot be empty")
	}

	document := &models.ProcessedDocument{
		ID:             core.NewID("doc"),
		Filename:       filename,
		SlackChannelID: slackChannelID,
		SlackFileID:    slackFileID,
	}

	if err := s.documentsRepo.CreateProcessedDocument(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create processed document: %w", err)
	}

	log.Printf("📋 Completed successfully - created processed document with ID: %s", document.ID)
	return document, nil
}

func (s *DocumentsService) GetProcessedDocumentByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.ProcessedDocument], error) {
	if !core.IsValidULID(id) {
		return mo.None[*models.ProcessedDocument](), fmt.Errorf("document ID must be a valid ULID")
	}

	document, err := s.documentsRepo.GetProcessedDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return mo.None[*models.ProcessedDocument](), nil
		}
		return mo.None[*models.ProcessedDocument](), fmt.Errorf("failed to get processed document: %w", err)
	}

	return mo.Some(document), nil
}

func (s *DocumentsService) GetProcessedDocumentsByChannel(
	ctx context.Context,
	channelID string,
) ([]*models.ProcessedDocument, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel ID cannot be empty")
	}

	documents, err := s.documentsRepo.GetProcessedDocumentsByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get processed documents by channel: %w", err)
	}

	return documents, nil
}
