package slack

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebridge/dispatcher"
	"filebridge/models"
)

func TestProcessAppMentionEvent(t *testing.T) {
	useCase, mockClient, _ := setupSlackUseCase(t)

	err := useCase.ProcessAppMentionEvent(context.Background(), models.SlackAppMentionEvent{
		Channel: "C123",
		User:    "U_HUMAN",
		Text:    "<@U_BOT> what can you do?",
		TS:      "1700000000.000500",
	})

	require.NoError(t, err)
	require.Len(t, mockClient.PostedMessages, 1)

	posted := mockClient.PostedMessages[0]
	assert.Equal(t, "1700000000.000500", posted.ThreadTS)
	assert.Contains(t, posted.Text, "Supported file types")
	assert.Contains(t, posted.Text, "pdf")
	assert.Contains(t, posted.Text, "docx")
}

func TestProcessMessageEvent(t *testing.T) {
	t.Run("HelpKeyword", func(t *testing.T) {
		useCase, mockClient, _ := setupSlackUseCase(t)

		err := useCase.ProcessMessageEvent(context.Background(), models.SlackMessageEvent{
			Channel: "C123",
			User:    "U_HUMAN",
			Text:    "can someone help me with this?",
			TS:      "1700000000.000600",
		})

		require.NoError(t, err)
		require.Len(t, mockClient.PostedMessages, 1)
		assert.Contains(t, mockClient.PostedMessages[0].Text, "Supported file types")
	})

	t.Run("BotMessageIgnored", func(t *testing.T) {
		useCase, mockClient, _ := setupSlackUseCase(t)

		err := useCase.ProcessMessageEvent(context.Background(), models.SlackMessageEvent{
			Subtype: "bot_message",
			Channel: "C123",
			Text:    "help text from a bot",
			TS:      "1700000000.000700",
		})

		require.NoError(t, err)
		assert.Empty(t, mockClient.PostedMessages)
	})

	t.Run("UnrelatedMessageIgnored", func(t *testing.T) {
		useCase, mockClient, _ := setupSlackUseCase(t)

		err := useCase.ProcessMessageEvent(context.Background(), models.SlackMessageEvent{
			Channel: "C123",
			User:    "U_HUMAN",
			Text:    "lunch anyone?",
			TS:      "1700000000.000800",
		})

		require.NoError(t, err)
		assert.Empty(t, mockClient.PostedMessages)
	})
}

func TestRegisterHandlers_RoutesEvents(t *testing.T) {
	useCase, mockClient, _ := setupSlackUseCase(t)

	d := dispatcher.NewDispatcher()
	useCase.RegisterHandlers(d)

	payload, err := json.Marshal(map[string]any{
		"type": "event_callback",
		"event": map[string]any{
			"type":    "app_mention",
			"channel": "C123",
			"user":    "U_HUMAN",
			"text":    "<@U_BOT> hello",
			"ts":      "1700000000.000900",
		},
	})
	require.NoError(t, err)

	ack, err := d.Dispatch(payload)
	require.NoError(t, err)
	require.NotNil(t, ack)

	// The handler runs asynchronously relative to the ack
	require.Eventually(t, func() bool {
		return len(mockClient.PostedMessagesSnapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, mockClient.PostedMessagesSnapshot()[0].Text, "file processor bot")
}
