// File: internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"docuchat/internal/database"
	"docuchat/internal/domain"
	"docuchat/internal/repository/attachment"
	"docuchat/internal/repository/chat"
	"docuchat/internal/repository/project"
	"docuchat/internal/services"
	"docuchat/internal/services/ai"
	"docuchat/internal/services/assistant"
)

// scriptedProvider answers every completion with a fixed reply and every
// image request with a fixed URL.
type scriptedProvider struct {
	reply  string
	hasKey bool
	err    error
}

func (p *scriptedProvider) Complete(context.Context, ai.CompletionRequest) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if !p.hasKey {
		return "", ai.ErrNoAPIKey
	}
	return p.reply, nil
}

func (p *scriptedProvider) GenerateImage(context.Context, string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "https://images.example/gen.png", nil
}

func (p *scriptedProvider) SetAPIKey(key string) error {
	if key == "" {
		return domain.NewValidationError("API key is required")
	}
	p.hasKey = true
	return nil
}

func (p *scriptedProvider) HasAPIKey() bool { return p.hasKey }

type staticExtractor struct{ text string }

func (e staticExtractor) Text([]byte) (string, error) { return e.text, nil }

func newTestRouter(t *testing.T, provider *scriptedProvider) *mux.Router {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db, services.NoOpLogger{}))

	logger := services.NoOpLogger{}
	projectRepo := project.NewProjectRepository(db)
	chatRepo := chat.NewChatRepository(db)
	attachRepo := attachment.NewAttachmentRepository(db)

	assistantService, err := assistant.NewService(
		assistant.DefaultConfig(), provider, chatRepo, attachRepo,
		staticExtractor{text: "extracted text"}, assistant.DocumentRelated, logger)
	require.NoError(t, err)

	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo, logger), logger)
	chatHandler := NewChatHandler(services.NewChatService(chatRepo, projectRepo, logger), logger)
	fileHandler := NewFileHandler(services.NewFileService(attachRepo, chatRepo, logger), 1<<20, logger)
	assistantHandler := NewAssistantHandler(assistantService, logger)

	r := mux.NewRouter()
	r.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/projects/{id:[0-9]+}", projectHandler.RenameProject).Methods("PUT")
	r.HandleFunc("/projects/{id:[0-9]+}", projectHandler.DeleteProject).Methods("DELETE")
	r.HandleFunc("/projects/{id:[0-9]+}/chats", chatHandler.CreateChatInProject).Methods("POST")
	r.HandleFunc("/chats", chatHandler.ListChats).Methods("GET")
	r.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	r.HandleFunc("/chats/{id:[0-9]+}", chatHandler.RenameChat).Methods("PUT")
	r.HandleFunc("/chats/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	r.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.SetMessages).Methods("POST")
	r.HandleFunc("/chats/{id:[0-9]+}/export", chatHandler.ExportChat).Methods("GET")
	r.HandleFunc("/chats/{id:[0-9]+}/pdfs", fileHandler.ListChatFiles).Methods("GET")
	r.HandleFunc("/upload/{chatId:[0-9]+}", fileHandler.Upload).Methods("POST")
	r.HandleFunc("/files/{id:[0-9]+}", fileHandler.Download).Methods("GET")
	r.HandleFunc("/files/{id:[0-9]+}", fileHandler.DeleteFile).Methods("DELETE")
	r.HandleFunc("/api/ask", assistantHandler.Ask).Methods("POST")
	r.HandleFunc("/api/generate-infographic", assistantHandler.GenerateInfographic).Methods("POST")
	r.HandleFunc("/api/set-openai-key", assistantHandler.SetAPIKey).Methods("POST")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func uploadFile(t *testing.T, router *mux.Router, path, filename, mimetype string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", mimetype)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProjectChatFileLifecycle(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: true, reply: "ok"})

	// Create a project and a chat inside it.
	rec := doJSON(t, router, "POST", "/projects", map[string]string{"name": "Thesis"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var proj domain.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &proj))

	rec = doJSON(t, router, "PUT", "/projects/1", map[string]string{"name": strings.Repeat("x", 500)})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "POST", "/projects/1/chats", map[string]string{"title": "Sources"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.ProjectID)
	assert.Equal(t, proj.ID, *created.ProjectID)

	// Upload an attachment and read it back.
	rec = uploadFile(t, router, "/upload/1", "paper.pdf", "application/pdf", []byte("%PDF-1.4 body"))
	require.Equal(t, http.StatusOK, rec.Code)
	var uploaded struct {
		ID       uint   `json:"id"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, "paper.pdf", uploaded.Filename)

	rec = doJSON(t, router, "GET", "/chats/1/pdfs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var files []domain.Attachment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)

	rec = doJSON(t, router, "GET", "/files/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 body", rec.Body.String())

	// Deleting the project takes the chat and attachment with it.
	rec = doJSON(t, router, "DELETE", "/projects/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, "GET", "/chats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chats []domain.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chats))
	assert.Empty(t, chats)

	rec = doJSON(t, router, "GET", "/files/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatMessagesEndpoints(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: true, reply: "ok"})

	rec := doJSON(t, router, "POST", "/chats", map[string]string{})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.DefaultChatTitle, created.Title)

	rec = doJSON(t, router, "POST", "/chats/1/messages", map[string]interface{}{
		"messages": []map[string]string{
			{"role": "user", "content": "hello"},
			{"role": "assistant", "content": "hi"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// messages must be an array, not null or absent.
	rec = doJSON(t, router, "POST", "/chats/1/messages", map[string]interface{}{"messages": nil})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "messages must be an array")

	rec = doJSON(t, router, "POST", "/chats/1/messages", map[string]interface{}{
		"messages": []map[string]string{{"role": "moderator", "content": "x"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "GET", "/chats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chats []domain.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chats))
	require.Len(t, chats, 1)
	require.Len(t, chats[0].Messages, 2)

	rec = doJSON(t, router, "PUT", "/chats/1", map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Titles have no length ceiling, only non-emptiness.
	longTitle := strings.Repeat("long ", 120)
	rec = doJSON(t, router, "PUT", "/chats/1", map[string]string{"title": longTitle})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, "PUT", "/chats/1", map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/chats/1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Renamed")

	rec = doJSON(t, router, "DELETE", "/chats/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, "PUT", "/chats/1", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAskEndpoint(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: true, reply: "an answer"})

	rec := doJSON(t, router, "POST", "/api/ask", map[string]string{"question": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	var answer struct {
		Answer    string   `json:"answer"`
		Followups []string `json:"followups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Equal(t, "an answer", answer.Answer)

	rec = doJSON(t, router, "POST", "/api/ask", map[string]string{"question": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskEndpointWithoutKey(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: false})

	rec := doJSON(t, router, "POST", "/api/ask", map[string]string{"question": "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OpenAI API key not set")

	// Supplying a key through the endpoint unblocks the assistant.
	rec = doJSON(t, router, "POST", "/api/set-openai-key", map[string]string{"apikey": "sk-test"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	rec = doJSON(t, router, "POST", "/api/ask", map[string]string{"question": "hello"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAskEndpointUpstreamFailure(t *testing.T) {
	provider := &scriptedProvider{hasKey: true}
	provider.err = &domain.UpstreamError{Op: "chat completion", Err: assert.AnError}
	router := newTestRouter(t, provider)

	rec := doJSON(t, router, "POST", "/api/ask", map[string]string{"question": "hello"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to get an answer from the assistant")
}

func TestGenerateInfographicEndpointValidation(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: true, reply: "summary"})

	rec := doJSON(t, router, "POST", "/api/generate-infographic", map[string]uint{"chatId": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	doJSON(t, router, "POST", "/chats", map[string]string{})
	rec = doJSON(t, router, "POST", "/api/generate-infographic", map[string]uint{"chatId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no PDF file found")
}

func TestUploadValidation(t *testing.T) {
	router := newTestRouter(t, &scriptedProvider{hasKey: true})

	// Unknown chat.
	rec := uploadFile(t, router, "/upload/99", "a.pdf", "application/pdf", []byte("x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Missing multipart field.
	doJSON(t, router, "POST", "/chats", map[string]string{})
	req := httptest.NewRequest("POST", "/upload/1", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
