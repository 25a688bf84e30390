package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dev-chat/chat"
	"dev-chat/config"
	"dev-chat/dto"
	"dev-chat/services"
	"dev-chat/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := services.NewChatService(store, chat.NewEngine(time.Second))
	return New(store, svc, config.LLMConfig{}.WithDefaults())
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConfigReportsCredentialState(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/config", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ConfigResponseDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.HasExternalCredential)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	rec = doJSON(t, r, http.MethodGet, "/api/config", nil)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.HasExternalCredential)
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	// create
	rec := doJSON(t, r, http.MethodPost, "/api/sessions", dto.CreateSessionRequestDTO{Title: "My Chat"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created dto.CreateSessionResponseDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "My Chat", created.Title)

	// list
	rec = doJSON(t, r, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var sessions []dto.SessionDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)

	// rename with blank title
	rec = doJSON(t, r, http.MethodPatch, "/api/sessions/"+created.ID, dto.RenameSessionRequestDTO{Title: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// rename
	rec = doJSON(t, r, http.MethodPatch, "/api/sessions/"+created.ID, dto.RenameSessionRequestDTO{Title: "Renamed"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/sessions", nil)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Equal(t, "Renamed", sessions[0].Title)

	// delete the last session: a fresh default one takes its place
	rec = doJSON(t, r, http.MethodDelete, "/api/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/sessions", nil)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)
	assert.NotEqual(t, created.ID, sessions[0].ID)
	assert.Equal(t, "New Chat", sessions[0].Title)
}

func TestChatValidation(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/chat", dto.ChatRequestDTO{Prompt: "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/chat", dto.ChatRequestDTO{SessionID: "s1", Prompt: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown session is a caller error, not a server one
	rec = doJSON(t, r, http.MethodPost, "/api/chat", dto.ChatRequestDTO{SessionID: "missing", Prompt: "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatTurnAndTranscript(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/sessions", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created dto.CreateSessionResponseDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodPost, "/api/chat", dto.ChatRequestDTO{
		SessionID: created.ID,
		Prompt:    "Help me debug this error",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponseDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "Debug workflow:")
	assert.Len(t, resp.Messages, 2)
	assert.Equal(t, "user", resp.Messages[0].Role)
	assert.Equal(t, "assistant", resp.Messages[1].Role)

	// transcript endpoint returns the same messages chronologically
	rec = doJSON(t, r, http.MethodGet, "/api/sessions/"+created.ID+"/messages", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var msgs []dto.MessageDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	assert.Equal(t, resp.Messages, msgs)
}
