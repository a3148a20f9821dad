package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"filebridge/dispatcher"
)

// maxTimestampSkew bounds the replay-attack window for webhook requests
const maxTimestampSkew = 300 // seconds

type SlackEventsHandler struct {
	signingSecret string
	dispatcher    *dispatcher.Dispatcher
}

func NewSlackEventsHandler(signingSecret string, d *dispatcher.Dispatcher) *SlackEventsHandler {
	return &SlackEventsHandler{
		signingSecret: signingSecret,
		dispatcher:    d,
	}
}

// verifySlackSignature verifies the authenticity of a Slack webhook
// request. It must be fed the raw, unparsed request body: any JSON
// re-serialization before verification invalidates the signature.
func verifySlackSignature(signingSecret, signature, timestamp string, body []byte) error {
	if timestamp == "" || signature == "" {
		return fmt.Errorf("missing required headers")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp format: %v", err)
	}

	// Reject stale or future-dated requests to bound replay windows
	skew := time.Now().Unix() - ts
	if skew > maxTimestampSkew || skew < -maxTimestampSkew {
		return fmt.Errorf("request timestamp outside tolerance")
	}

	// Signature base string: v0:timestamp:body
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

func (h *SlackEventsHandler) HandleSlackEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack event received from %s", r.RemoteAddr)

	// Read raw body for signature verification
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Slack-Signature")
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if err := verifySlackSignature(h.signingSecret, signature, timestamp, bodyBytes); err != nil {
		log.Printf("❌ Slack signature verification failed: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ack, err := h.dispatcher.Dispatch(bodyBytes)
	if err != nil {
		log.Printf("❌ Failed to dispatch event: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	if ack.Challenge != "" {
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(ack.Challenge)); err != nil {
			log.Printf("❌ Failed to write challenge response: %v", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackEventsHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/slack/events", h.HandleSlackEvent).Methods("POST")
	log.Printf("✅ POST /slack/events endpoint registered")
}
