// File: internal/handlers/assistant_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docuchat/internal/domain"
	"docuchat/internal/services"
	"docuchat/internal/services/ai"
	"docuchat/internal/services/assistant"
)

type AssistantHandler struct {
	Assistant *assistant.Service
	logger    services.Logger
}

func NewAssistantHandler(svc *assistant.Service, logger services.Logger) *AssistantHandler {
	return &AssistantHandler{Assistant: svc, logger: logger}
}

type askRequest struct {
	Question string `json:"question"`
	ChatID   *uint  `json:"chatId"`
}

func (r askRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Required),
	)
}

type infographicRequest struct {
	ChatID uint `json:"chatId"`
}

type setKeyRequest struct {
	APIKey string `json:"apikey"`
}

// Ask answers a question, optionally against a chat's history and latest
// attachment. Upstream failures come back as one fixed error payload.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "question is required", http.StatusBadRequest)
		return
	}

	var chatID uint
	if req.ChatID != nil {
		chatID = *req.ChatID
	}

	answer, err := h.Assistant.Ask(r.Context(), req.Question, chatID)
	if err != nil {
		h.writeAssistantError(w, err, "failed to get an answer from the assistant")
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// GenerateInfographic runs the multi-stage pipeline; any stage failure
// aborts with a single error and no partial results.
func (h *AssistantHandler) GenerateInfographic(w http.ResponseWriter, r *http.Request) {
	var req infographicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 {
		writeError(w, "chat ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.Assistant.GenerateInfographic(r.Context(), req.ChatID)
	if err != nil {
		h.writeAssistantError(w, err, "failed to generate infographic, please try again")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SetAPIKey replaces the upstream credential for the lifetime of the
// process. In-memory only, never persisted.
func (h *AssistantHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req setKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Assistant.SetAPIKey(req.APIKey); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeAssistantError handles the assistant-specific cases before falling
// back to the shared mapping: a missing credential is the caller's problem,
// an upstream failure is answered with the fixed message for the operation.
func (h *AssistantHandler) writeAssistantError(w http.ResponseWriter, err error, upstreamMsg string) {
	var uErr *domain.UpstreamError
	switch {
	case errors.Is(err, ai.ErrNoAPIKey):
		writeError(w, "OpenAI API key not set", http.StatusBadRequest)
	case errors.As(err, &uErr):
		h.logger.Error("upstream call failed", "op", uErr.Op, "error", uErr.Err)
		writeError(w, upstreamMsg, http.StatusBadGateway)
	default:
		writeServiceError(w, h.logger, err)
	}
}
