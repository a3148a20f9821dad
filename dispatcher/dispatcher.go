// Package dispatcher routes inbound Slack event payloads to registered
// handlers. Handlers run in supervised goroutines so the transport's
// acknowledgment is never blocked on downstream processing.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Handler processes one inner event. The raw JSON is the event object
// itself, not the event-callback envelope around it.
type Handler func(ctx context.Context, event json.RawMessage) error

// Ack is the lightweight response returned to the transport. A non-empty
// Challenge means the payload was a url_verification handshake and the
// challenge value must be echoed back.
type Ack struct {
	Challenge string
}

// envelope is the platform's wrapper around a single event
type envelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	Event     json.RawMessage `json:"event"`
}

// eventProbe extracts just the inner event's type tag
type eventProbe struct {
	Type string `json:"type"`
}

// Dispatcher maps event-type names to handlers. Populated once at
// startup; Register is not safe to call concurrently with Dispatch.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates an empty event dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
	}
}

// Register installs a handler for an event type. The last registration
// for a given type wins.
func (d *Dispatcher) Register(eventType string, handler Handler) {
	d.handlers[eventType] = handler
	log.Printf("🚀 Registered handler for event type: %s", eventType)
}

// Dispatch parses an events-API payload and fires the matching handler
// without waiting for it. The returned Ack is ready to send immediately;
// handler failures are logged and never surface to the transport.
func (d *Dispatcher) Dispatch(payload []byte) (*Ack, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	switch env.Type {
	case "url_verification":
		if env.Challenge == "" {
			return nil, fmt.Errorf("url_verification payload has no challenge")
		}
		log.Printf("🔐 Responding to URL verification challenge")
		return &Ack{Challenge: env.Challenge}, nil

	case "event_callback":
		if len(env.Event) == 0 {
			return nil, fmt.Errorf("event_callback payload has no event")
		}

		var probe eventProbe
		if err := json.Unmarshal(env.Event, &probe); err != nil {
			return nil, fmt.Errorf("failed to parse inner event: %w", err)
		}

		handler, ok := d.handlers[probe.Type]
		if !ok {
			// Not an error: events without a registered handler are ignored
			log.Printf("📋 No handler registered for event type: %s", probe.Type)
			return &Ack{}, nil
		}

		d.invoke(probe.Type, handler, env.Event)
		return &Ack{}, nil

	default:
		log.Printf("📋 Ignoring payload of type: %s", env.Type)
		return &Ack{}, nil
	}
}

// invoke runs a handler in a supervised goroutine. The context is
// detached from the transport request so processing survives the ack.
func (d *Dispatcher) invoke(eventType string, handler Handler, event json.RawMessage) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ Recovered panic in %s handler: %v", eventType, r)
			}
		}()

		if err := handler(context.Background(), event); err != nil {
			log.Printf("❌ Failed to handle %s event: %v", eventType, err)
		}
	}()
}
