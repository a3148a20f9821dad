package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"

	"filebridge/clients"
	"filebridge/dispatcher"
	"filebridge/models"
)

// helpKeywordRegex matches messages asking what the bot can do
var helpKeywordRegex = regexp.MustCompile(`(?i)\bhelp\b`)

// RegisterHandlers installs the event handlers on the dispatcher
func (s *SlackUseCase) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register("file_shared", func(ctx context.Context, raw json.RawMessage) error {
		var event models.SlackFileSharedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return fmt.Errorf("failed to parse file_shared event: %w", err)
		}
		return s.ProcessFileSharedEvent(ctx, event)
	})

	d.Register("app_mention", func(ctx context.Context, raw json.RawMessage) error {
		var event models.SlackAppMentionEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return fmt.Errorf("failed to parse app_mention event: %w", err)
		}
		return s.ProcessAppMentionEvent(ctx, event)
	})

	d.Register("message", func(ctx context.Context, raw json.RawMessage) error {
		var event models.SlackMessageEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return fmt.Errorf("failed to parse message event: %w", err)
		}
		return s.ProcessMessageEvent(ctx, event)
	})
}

// ProcessAppMentionEvent replies to a mention with the list of supported
// file types, threaded under the mention
func (s *SlackUseCase) ProcessAppMentionEvent(ctx context.Context, event models.SlackAppMentionEvent) error {
	log.Printf("📨 Bot mentioned by %s in %s", event.User, event.Channel)

	text := fmt.Sprintf(
		"Hi! I'm a file processor bot. Upload a file and I'll process it for you.\n\n*Supported file types:*\n%s",
		s.registry.DescribeSupported(),
	)

	_, err := s.slackClient.PostMessage(ctx, event.Channel,
		clients.SlackMessageOptionText(text),
		clients.SlackMessageOptionThreadTS(event.TS),
	)
	if err != nil {
		return fmt.Errorf("failed to reply to mention: %w", err)
	}

	return nil
}

// ProcessMessageEvent answers help keywords in channel messages. Bot
// messages are ignored to prevent reply loops.
func (s *SlackUseCase) ProcessMessageEvent(ctx context.Context, event models.SlackMessageEvent) error {
	if event.Subtype == "bot_message" {
		return nil
	}

	if !helpKeywordRegex.MatchString(event.Text) {
		return nil
	}

	log.Printf("📨 Help keyword from %s in %s", event.User, event.Channel)

	text := fmt.Sprintf(
		"*Supported file types:*\n%s\n\nJust upload a file and I'll process it automatically!",
		s.registry.DescribeSupported(),
	)

	_, err := s.slackClient.PostMessage(ctx, event.Channel,
		clients.SlackMessageOptionText(text),
		clients.SlackMessageOptionThreadTS(event.TS),
	)
	if err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	return nil
}
