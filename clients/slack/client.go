package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/slack-go/slack"
	"golang.org/x/time/rate"

	"filebridge/clients"
)

// SlackClient implements the clients.SlackClient interface using the
// slack-go/slack SDK. Every API call goes through a shared rate limiter
// so concurrent pipelines stay inside Slack's Tier 3 budget.
type SlackClient struct {
	api     *slack.Client
	limiter *rate.Limiter
}

// NewSlackClient creates a new Slack client with the provided bot token.
// appToken may be empty when Socket Mode is not in use.
func NewSlackClient(botToken, appToken string) *SlackClient {
	opts := []slack.Option{}
	if appToken != "" {
		opts = append(opts, slack.OptionAppLevelToken(appToken))
	}

	return &SlackClient{
		api:     slack.New(botToken, opts...),
		limiter: rate.NewLimiter(rate.Every(time.Minute/100), 100),
	}
}

// API exposes the underlying SDK client for transports that need it
// (the Socket Mode runner).
func (c *SlackClient) API() *slack.Client {
	return c.api
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	response, err := c.api.AuthTest()
	if err != nil {
		return nil, err
	}

	return &clients.SlackAuthTestResponse{
		UserID: response.UserID,
		TeamID: response.TeamID,
	}, nil
}

// GetFileInfo fetches metadata for an uploaded file
func (c *SlackClient) GetFileInfo(ctx context.Context, fileID string) (*clients.SlackFile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	file, _, _, err := c.api.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		return nil, err
	}

	return &clients.SlackFile{
		ID:                 file.ID,
		Name:               file.Name,
		Mimetype:           file.Mimetype,
		Size:               int64(file.Size),
		User:               file.User,
		URLPrivateDownload: file.URLPrivateDownload,
		Shares: clients.SlackFileShares{
			Public:  convertShares(file.Shares.Public),
			Private: convertShares(file.Shares.Private),
		},
	}, nil
}

func convertShares(shares map[string][]slack.ShareFileInfo) map[string][]clients.SlackShareInfo {
	if shares == nil {
		return nil
	}
	converted := make(map[string][]clients.SlackShareInfo, len(shares))
	for channelID, infos := range shares {
		for _, info := range infos {
			converted[channelID] = append(converted[channelID], clients.SlackShareInfo{
				TS:       info.Ts,
				ThreadTS: info.ThreadTs,
			})
		}
	}
	return converted
}

// DownloadFile fetches the raw bytes behind a file's private URL.
// The SDK attaches the bot token as a Bearer authorization header.
func (c *SlackClient) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var buf bytes.Buffer
	if err := c.api.GetFileContext(ctx, downloadURL, &buf); err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return buf.Bytes(), nil
}

// PostMessage sends a message to a Slack channel
func (c *SlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	options ...clients.SlackMessageOption,
) (*clients.SlackPostMessageResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	// Convert our custom options to SDK options
	var config clients.SlackMessageConfig
	for _, opt := range options {
		opt.Apply(&config)
	}

	var sdkOptions []slack.MsgOption
	if config.Text != "" {
		sdkOptions = append(sdkOptions, slack.MsgOptionText(config.Text, false))
	}
	if config.ThreadTS != "" {
		sdkOptions = append(sdkOptions, slack.MsgOptionTS(config.ThreadTS))
	}
	if len(config.Blocks) > 0 {
		blocks, err := decodeBlocks(config.Blocks)
		if err != nil {
			return nil, fmt.Errorf("failed to decode message blocks: %w", err)
		}
		sdkOptions = append(sdkOptions, slack.MsgOptionBlocks(blocks...))
	}

	channel, timestamp, err := c.api.PostMessageContext(ctx, channelID, sdkOptions...)
	if err != nil {
		return nil, err
	}

	return &clients.SlackPostMessageResponse{
		Channel:   channel,
		Timestamp: timestamp,
	}, nil
}

// decodeBlocks parses opaque block JSON into SDK block types
func decodeBlocks(raw []json.RawMessage) ([]slack.Block, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var blocks slack.Blocks
	if err := json.Unmarshal(payload, &blocks); err != nil {
		return nil, err
	}
	return blocks.BlockSet, nil
}

// UploadFile uploads a file to a Slack channel
func (c *SlackClient) UploadFile(ctx context.Context, params clients.SlackFileUploadParameters) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	_, err := c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:         params.ChannelID,
		Reader:          bytes.NewReader(params.Content),
		FileSize:        len(params.Content),
		Filename:        params.Filename,
		Title:           params.Title,
		InitialComment:  params.InitialComment,
		ThreadTimestamp: params.ThreadTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}
