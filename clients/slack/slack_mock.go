package slack

import (
	"context"
	"sync"

	"filebridge/clients"
)

// MockSlackClient implements the clients.SlackClient interface for testing
type MockSlackClient struct {
	MockAuthTest     func() (*clients.SlackAuthTestResponse, error)
	MockGetFileInfo  func(ctx context.Context, fileID string) (*clients.SlackFile, error)
	MockDownloadFile func(ctx context.Context, downloadURL string) ([]byte, error)
	MockPostMessage  func(ctx context.Context, channelID string, options ...clients.SlackMessageOption) (*clients.SlackPostMessageResponse, error)
	MockUploadFile   func(ctx context.Context, params clients.SlackFileUploadParameters) error

	// Recorded calls for assertions; guarded because handlers may run
	// in goroutines
	mu             sync.Mutex
	PostedMessages []clients.SlackMessageConfig
	PostedChannels []string
	Uploads        []clients.SlackFileUploadParameters
}

// PostedMessagesSnapshot returns a copy of the recorded messages, safe to
// read while handlers are still running
func (m *MockSlackClient) PostedMessagesSnapshot() []clients.SlackMessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]clients.SlackMessageConfig(nil), m.PostedMessages...)
}

// NewMockSlackClient creates a new mock Slack client
func NewMockSlackClient() *MockSlackClient {
	return &MockSlackClient{}
}

func (m *MockSlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	if m.MockAuthTest != nil {
		return m.MockAuthTest()
	}

	return &clients.SlackAuthTestResponse{
		UserID: "U_BOT",
		TeamID: "T123456789",
	}, nil
}

func (m *MockSlackClient) GetFileInfo(ctx context.Context, fileID string) (*clients.SlackFile, error) {
	if m.MockGetFileInfo != nil {
		return m.MockGetFileInfo(ctx, fileID)
	}

	return &clients.SlackFile{
		ID:   fileID,
		Name: "test.txt",
	}, nil
}

func (m *MockSlackClient) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	if m.MockDownloadFile != nil {
		return m.MockDownloadFile(ctx, downloadURL)
	}

	return []byte("test content"), nil
}

func (m *MockSlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	options ...clients.SlackMessageOption,
) (*clients.SlackPostMessageResponse, error) {
	var config clients.SlackMessageConfig
	for _, opt := range options {
		opt.Apply(&config)
	}
	m.mu.Lock()
	m.PostedMessages = append(m.PostedMessages, config)
	m.PostedChannels = append(m.PostedChannels, channelID)
	m.mu.Unlock()

	if m.MockPostMessage != nil {
		return m.MockPostMessage(ctx, channelID, options...)
	}

	return &clients.SlackPostMessageResponse{
		Channel:   channelID,
		Timestamp: "1234567890.123456",
	}, nil
}

func (m *MockSlackClient) UploadFile(ctx context.Context, params clients.SlackFileUploadParameters) error {
	m.mu.Lock()
	m.Uploads = append(m.Uploads, params)
	m.mu.Unlock()

	if m.MockUploadFile != nil {
		return m.MockUploadFile(ctx, params)
	}

	return nil
}
