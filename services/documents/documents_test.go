package documents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filebridge/core"
	"filebridge/models"
)

type mockDocumentsRepo struct {
	mock.Mock
}

func (m *mockDocumentsRepo) CreateProcessedDocument(ctx context.Context, document *models.ProcessedDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *mockDocumentsRepo) GetProcessedDocumentByID(ctx context.Context, id string) (*models.ProcessedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcessedDocument), args.Error(1)
}

func (m *mockDocumentsRepo) GetProcessedDocumentsByChannel(ctx context.Context, channelID string) ([]*models.ProcessedDocument, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProcessedDocument), args.Error(1)
}

func TestCreateProcessedDocument(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		repo.On("CreateProcessedDocument", mock.Anything, mock.AnythingOfType("*models.ProcessedDocument")).
			Return(nil)

		document, err := service.CreateProcessedDocument(context.Background(), "report.pdf", "C123", "F456")

		require.NoError(t, err)
		assert.Equal(t, "report.pdf", document.Filename)
		assert.Equal(t, "C123", document.SlackChannelID)
		assert.Equal(t, "F456", document.SlackFileID)
		assert.True(t, core.IsValidULID(document.ID), "generated ID should be a prefixed ULID")
		repo.AssertExpectations(t)
	})

	t.Run("EmptyFilename", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		_, err := service.CreateProcessedDocument(context.Background(), "", "C123", "F456")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "filename")
	})

	t.Run("RepoFailure", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		repo.On("CreateProcessedDocument", mock.Anything, mock.Anything).
			Return(fmt.Errorf("connection refused"))

		_, err := service.CreateProcessedDocument(context.Background(), "report.pdf", "C123", "F456")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGetProcessedDocumentByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		id := core.NewID("doc")
		expected := &models.ProcessedDocument{ID: id, Filename: "report.pdf"}
		repo.On("GetProcessedDocumentByID", mock.Anything, id).Return(expected, nil)

		maybeDocument, err := service.GetProcessedDocumentByID(context.Background(), id)

		require.NoError(t, err)
		require.True(t, maybeDocument.IsPresent())
		assert.Equal(t, expected, maybeDocument.MustGet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		id := core.NewID("doc")
		repo.On("GetProcessedDocumentByID", mock.Anything, id).Return(nil, core.ErrNotFound)

		maybeDocument, err := service.GetProcessedDocumentByID(context.Background(), id)

		require.NoError(t, err)
		assert.False(t, maybeDocument.IsPresent())
	})

	t.Run("InvalidID", func(t *testing.T) {
		repo := &mockDocumentsRepo{}
		service := NewDocumentsService(repo)

		_, err := service.GetProcessedDocumentByID(context.Background(), "not-a-ulid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ULID")
	})
}
