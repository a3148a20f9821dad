package documents

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"filebridge/models"
)

type MockDocumentsService struct {
	mock.Mock
}

func (m *MockDocumentsService) CreateProcessedDocument(
	ctx context.Context,
	filename, slackChannelID, slackFileID string,
) (*models.ProcessedDocument, error) {
	args := m.Called(ctx, filename, slackChannelID, slackFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcessedDocument), args.Error(1)
}

func (m *MockDocumentsService) GetProcessedDocumentByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.ProcessedDocument], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.ProcessedDocument]), args.Error(1)
}

func (m *MockDocumentsService) GetProcessedDocumentsByChannel(
	ctx context.Context,
	channelID string,
) ([]*models.ProcessedDocument, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProcessedDocument), args.Error(1)
}
