package clients

import "encoding/json"

// SlackAuthTestResponse holds the identity of the authenticated bot
type SlackAuthTestResponse struct {
	UserID string
	TeamID string
}

// SlackShareInfo records one share of a file into a channel
type SlackShareInfo struct {
	TS       string
	ThreadTS string
}

// SlackFileShares maps channel IDs to the shares recorded there,
// split by channel visibility
type SlackFileShares struct {
	Public  map[string][]SlackShareInfo
	Private map[string][]SlackShareInfo
}

// SlackFile is the file metadata fetched from the Slack API
type SlackFile struct {
	ID                 string
	Name               string
	Mimetype           string
	Size               int64
	User               string
	URLPrivateDownload string
	Shares             SlackFileShares
}

// SlackPostMessageResponse holds the channel and timestamp of a posted message
type SlackPostMessageResponse struct {
	Channel   string
	Timestamp string
}

// SlackFileUploadParameters describes a file upload to a channel
type SlackFileUploadParameters struct {
	ChannelID       string
	Content         []byte
	Filename        string
	Title           string
	InitialComment  string
	ThreadTimestamp string
}

// SlackMessageConfig holds the resolved configuration for a message
type SlackMessageConfig struct {
	Text     string
	ThreadTS string
	Blocks   []json.RawMessage
}

// SlackMessageOption configures a message being posted
type SlackMessageOption interface {
	Apply(config *SlackMessageConfig)
}

type textOption string

func (o textOption) Apply(config *SlackMessageConfig) { config.Text = string(o) }

// SlackMessageOptionText sets the message text
func SlackMessageOptionText(text string) SlackMessageOption {
	return textOption(text)
}

type threadTSOption string

func (o threadTSOption) Apply(config *SlackMessageConfig) { config.ThreadTS = string(o) }

// SlackMessageOptionThreadTS threads the message under the given timestamp
func SlackMessageOptionThreadTS(threadTS string) SlackMessageOption {
	return threadTSOption(threadTS)
}

type blocksOption []json.RawMessage

func (o blocksOption) Apply(config *SlackMessageConfig) { config.Blocks = o }

// SlackMessageOptionBlocks attaches rich-format blocks to the message
func SlackMessageOptionBlocks(blocks []json.RawMessage) SlackMessageOption {
	return blocksOption(blocks)
}
