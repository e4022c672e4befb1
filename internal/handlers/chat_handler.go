// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docuchat/internal/domain"
	"docuchat/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
	logger      services.Logger
}

func NewChatHandler(cs *services.ChatService, logger services.Logger) *ChatHandler {
	return &ChatHandler{ChatService: cs, logger: logger}
}

type createChatRequest struct {
	Title     string `json:"title"`
	ProjectID *uint  `json:"project_id"`
}

type renameChatRequest struct {
	Title string `json:"title"`
}

func (r renameChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	)
}

// ListChats returns every chat, newest first, message logs decoded.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.ChatService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.ChatService.Create(r.Context(), req.Title, req.ProjectID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CreateChatInProject creates a chat filed under the project in the path.
func (h *ChatHandler) CreateChatInProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.ChatService.Create(r.Context(), req.Title, &projectID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// SetMessages replaces a chat's message log wholesale.
func (h *ChatHandler) SetMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Messages == nil {
		writeError(w, "messages must be an array", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.SetMessages(r.Context(), chatID, req.Messages); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	var req renameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "title: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ChatService.Rename(r.Context(), chatID, req.Title); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := h.ChatService.Delete(r.Context(), chatID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportChat renders the transcript as a standalone HTML fragment.
func (h *ChatHandler) ExportChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	html, err := h.ChatService.ExportHTML(r.Context(), chatID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}
