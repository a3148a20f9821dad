package handlers

import (
	"context"
	"log"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"filebridge/dispatcher"
)

// SocketModeHandler receives events over a Socket Mode connection and
// feeds them to the same dispatcher the webhook transport uses. The
// envelope is acked before the handler runs, matching Slack's
// response-time budget.
type SocketModeHandler struct {
	client     *socketmode.Client
	dispatcher *dispatcher.Dispatcher
}

func NewSocketModeHandler(api *slack.Client, d *dispatcher.Dispatcher) *SocketModeHandler {
	return &SocketModeHandler{
		client:     socketmode.New(api),
		dispatcher: d,
	}
}

// Run processes the Socket Mode event stream until the context is
// canceled or the connection is torn down
func (h *SocketModeHandler) Run(ctx context.Context) error {
	go h.consumeEvents(ctx)
	return h.client.RunContext(ctx)
}

// consumeEvents drains the client's event channel until the context is
// canceled. The SDK does not close the channel on teardown, so the
// ctx.Done branch is what ends the loop.
func (h *SocketModeHandler) consumeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-h.client.Events:
			if !ok {
				return
			}
			h.handleEvent(evt)
		}
	}
}

func (h *SocketModeHandler) handleEvent(evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		log.Printf("🔌 Connecting to Slack via Socket Mode...")
	case socketmode.EventTypeConnectionError:
		log.Printf("❌ Socket Mode connection error: %v", evt.Data)
	case socketmode.EventTypeConnected:
		log.Printf("✅ Connected to Slack via Socket Mode")
	case socketmode.EventTypeEventsAPI:
		if evt.Request == nil {
			return
		}

		// Ack first: processing must never block the envelope
		h.client.Ack(*evt.Request)

		if _, err := h.dispatcher.Dispatch(evt.Request.Payload); err != nil {
			log.Printf("❌ Failed to dispatch Socket Mode event: %v", err)
		}
	}
}
