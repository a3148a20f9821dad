package models

// SlackFileSharedEvent is the inner event delivered when a file is shared
// in a channel the bot is a member of.
type SlackFileSharedEvent struct {
	Type      string `json:"type"`
	FileID    string `json:"file_id"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	EventTS   string `json:"event_ts"`
}

// SlackMessageEvent is the inner event delivered for channel messages.
type SlackMessageEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	Channel  string `json:"channel"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
}

// SlackAppMentionEvent is the inner event delivered when the bot is mentioned.
type SlackAppMentionEvent struct {
	Type     string `json:"type"`
	Channel  string `json:"channel"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
}
