// Package slack orchestrates inbound Slack events: the file-processing
// pipeline for file_shared events and the lighter help responders for
// message-like events.
package slack

import (
	"time"

	"filebridge/clients"
	"filebridge/guards"
	"filebridge/processors"
	"filebridge/services"
)

// SlackUseCase handles all Slack-specific operations
type SlackUseCase struct {
	slackClient      clients.SlackClient
	documentsService services.DocumentsService
	guardChain       *guards.Chain
	registry         *processors.Registry
	botUserID        string
	pipelineTimeout  time.Duration
}

// NewSlackUseCase creates a new instance of SlackUseCase. botUserID is the
// bot's own user ID, used by the self-loop guard. pipelineTimeout bounds
// each file pipeline run; zero disables the deadline.
func NewSlackUseCase(
	slackClient clients.SlackClient,
	documentsService services.DocumentsService,
	guardChain *guards.Chain,
	registry *processors.Registry,
	botUserID string,
	pipelineTimeout time.Duration,
) *SlackUseCase {
	return &SlackUseCase{
		slackClient:      slackClient,
		documentsService: documentsService,
		guardChain:       guardChain,
		registry:         registry,
		botUserID:        botUserID,
		pipelineTimeout:  pipelineTimeout,
	}
}
