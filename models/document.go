package models

import "time"

// ProcessedDocument records a file that went through the processing
// pipeline successfully.
type ProcessedDocument struct {
	ID             string    `db:"id" json:"id"`
	Filename       string    `db:"filename" json:"filename"`
	SlackChannelID string    `db:"slack_channel_id" json:"slack_channel_id"`
	SlackFileID    string    `db:"slack_file_id" json:"slack_file_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
