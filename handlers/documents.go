package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"filebridge/services"
)

// DocumentsHandler serves read-only views of processed-document records
type DocumentsHandler struct {
	documentsService services.DocumentsService
}

func NewDocumentsHandler(documentsService services.DocumentsService) *DocumentsHandler {
	return &DocumentsHandler{
		documentsService: documentsService,
	}
}

func (h *DocumentsHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	maybeDocument, err := h.documentsService.GetProcessedDocumentByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to get document %s: %v", id, err)
		http.Error(w, "failed to get document", http.StatusBadRequest)
		return
	}
	if !maybeDocument.IsPresent() {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(maybeDocument.MustGet()); err != nil {
		log.Printf("❌ Failed to encode document response: %v", err)
	}
}

func (h *DocumentsHandler) HandleListByChannel(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channel")
	if channelID == "" {
		http.Error(w, "channel query parameter is required", http.StatusBadRequest)
		return
	}

	documents, err := h.documentsService.GetProcessedDocumentsByChannel(r.Context(), channelID)
	if err != nil {
		log.Printf("❌ Failed to list documents for channel %s: %v", channelID, err)
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(documents); err != nil {
		log.Printf("❌ Failed to encode documents response: %v", err)
	}
}

func (h *DocumentsHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/documents/{id}", h.HandleGetDocument).Methods("GET")
	router.HandleFunc("/documents", h.HandleListByChannel).Methods("GET")
	log.Printf("✅ Documents endpoints registered")
}
