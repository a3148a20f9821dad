package clients

import "context"

// SlackClient defines the Slack platform capabilities the processing
// pipeline depends on.
type SlackClient interface {
	// AuthTest verifies the bot token and returns the bot's own identity
	AuthTest() (*SlackAuthTestResponse, error)
	// GetFileInfo fetches metadata for an uploaded file
	GetFileInfo(ctx context.Context, fileID string) (*SlackFile, error)
	// DownloadFile fetches the raw bytes behind a file's private URL
	DownloadFile(ctx context.Context, downloadURL string) ([]byte, error)
	// PostMessage sends a message to a channel
	PostMessage(ctx context.Context, channelID string, options ...SlackMessageOption) (*SlackPostMessageResponse, error)
	// UploadFile uploads a file to a channel
	UploadFile(ctx context.Context, params SlackFileUploadParameters) error
}
