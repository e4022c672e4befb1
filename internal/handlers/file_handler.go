// File: internal/handlers/file_handler.go
package handlers

import (
	"fmt"
	"io"
	"net/http"

	"docuchat/internal/services"
)

type FileHandler struct {
	FileService    *services.FileService
	logger         services.Logger
	maxUploadBytes int64
}

func NewFileHandler(fs *services.FileService, maxUploadBytes int64, logger services.Logger) *FileHandler {
	return &FileHandler{FileService: fs, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Upload accepts one multipart file under the "file" field and stores it
// against the chat in the path.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "chatId")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "could not read uploaded file", http.StatusBadRequest)
		return
	}

	created, err := h.FileService.Upload(r.Context(), chatID, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       created.ID,
		"filename": created.Filename,
	})
}

// ListChatFiles returns the chat's attachments, newest first.
func (h *FileHandler) ListChatFiles(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	attachments, err := h.FileService.ListForChat(r.Context(), chatID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

// Download streams the attachment bytes with their stored mimetype.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	att, err := h.FileService.Get(r.Context(), fileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if len(att.Content) == 0 {
		writeError(w, "file content unavailable", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", att.Mimetype)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", att.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(att.Content)
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := h.FileService.Delete(r.Context(), fileID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
