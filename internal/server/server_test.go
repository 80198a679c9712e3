package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/internal/store/sqlitestore"
)

const testToken = "test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts Options) (*gin.Engine, auth.Identity) {
	t.Helper()
	backend, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	user := auth.Identity{ID: uuid.New(), Email: "user@example.com"}
	verifier := auth.NewStaticVerifier(map[string]auth.Identity{testToken: user})
	router := NewRouter(service.New(backend, nil), verifier, opts)
	return router, user
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthenticationRequired(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodGet, "/prompts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/prompts", "wrong-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/prompts", testToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestModeOwnsAnonymousWrites(t *testing.T) {
	router, _ := newTestRouter(t, Options{GuestMode: true})

	w := doJSON(router, http.MethodPost, "/prompts", "", map[string]any{
		"title": "Anon", "content": "C",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	prompt := body["prompt"].(map[string]any)
	assert.Equal(t, auth.GuestID.String(), prompt["user_id"])
}

// Malformed ids must be rejected before any store access: the router here
// is built over a nil store, so reaching the storage layer would panic
// into a 500 instead of the expected 400.
func TestMalformedIDFailsFast(t *testing.T) {
	user := auth.Identity{ID: uuid.New()}
	verifier := auth.NewStaticVerifier(map[string]auth.Identity{testToken: user})
	router := NewRouter(service.New(nil, nil), verifier, Options{})

	paths := []string{
		"/prompts/not-a-uuid",
		"/prompts/not-a-uuid/versions",
		"/skills/12345",
		"/categories/xyz",
		"/public/prompts/0",
		"/public/skills/deadbeef",
	}
	for _, path := range paths {
		w := doJSON(router, http.MethodGet, path, testToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestUnknownIDReturnsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodGet, "/prompts/"+uuid.NewString(), testToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w), "error")
}

func TestPromptCRUDOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{
		"title": "T1", "content": "C1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)["prompt"].(map[string]any)
	id := created["id"].(string)

	w = doJSON(router, http.MethodPatch, "/prompts/"+id, testToken, map[string]any{
		"is_favorite": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/prompts/"+id, testToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)["prompt"].(map[string]any)
	assert.Equal(t, true, got["is_favorite"])
	assert.Equal(t, "T1", got["title"])

	w = doJSON(router, http.MethodDelete, "/prompts/"+id, testToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/prompts/"+id, testToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePromptValidationOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{"title": "T"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "required")
}

func TestPublicEndpointsNeedNoAuth(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	// Private by default: the public mirror hides it.
	w := doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{
		"title": "Private", "content": "C",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	privateID := decode(t, w)["prompt"].(map[string]any)["id"].(string)

	w = doJSON(router, http.MethodGet, "/public/prompts/"+privateID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Public: visible without a token, and each read bumps usage_count.
	w = doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{
		"title": "Shared", "content": "C", "is_public": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	publicID := decode(t, w)["prompt"].(map[string]any)["id"].(string)

	w = doJSON(router, http.MethodGet, "/public/prompts/"+publicID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["prompt"].(map[string]any)["usage_count"])

	w = doJSON(router, http.MethodGet, "/public/prompts/"+publicID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["prompt"].(map[string]any)["usage_count"])
}

func TestSystemCategoryForbiddenOverHTTP(t *testing.T) {
	backend, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	user := auth.Identity{ID: uuid.New()}
	verifier := auth.NewStaticVerifier(map[string]auth.Identity{testToken: user})
	svc := service.New(backend, nil)
	router := NewRouter(svc, verifier, Options{})

	sys, err := backend.Categories().Insert(context.Background(), &domain.Category{
		ID:       uuid.New(),
		UserID:   auth.GuestID,
		Name:     "Builtin",
		Type:     domain.CategoryPrompt,
		IsSystem: true,
	})
	require.NoError(t, err)

	w := doJSON(router, http.MethodPatch, "/categories/"+sys.ID.String(), testToken, map[string]any{
		"name": "renamed",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, "/categories/"+sys.ID.String(), testToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTagDeleteOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodPost, "/tags", testToken, map[string]any{"name": "go"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{
		"title": "Tagged", "content": "C", "tags": []string{"go", "keep"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodDelete, "/tags/go", testToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 1, result["prompts_scrubbed"])

	w = doJSON(router, http.MethodDelete, "/tags/go", testToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/tags", testToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tags := decode(t, w)["tags"].([]any)
	assert.NotContains(t, tags, "go")
	assert.Contains(t, tags, "keep")
}

func TestImportExportOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := doJSON(router, http.MethodPost, "/prompts", testToken, map[string]any{
		"title": "Exported", "content": "C", "is_public": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/import-export/export", testToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "formats")

	w = doJSON(router, http.MethodPost, "/import-export/export", testToken, map[string]any{
		"format": "json", "type": "all",
	})
	require.Equal(t, http.StatusOK, w.Code)
	exported := decode(t, w)
	raw, err := json.Marshal(exported["data"])
	require.NoError(t, err)

	// Re-importing into the same account skips the colliding title.
	w = doJSON(router, http.MethodPost, "/import-export/import", testToken, map[string]any{
		"data": string(raw),
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	imported := result["imported"].(map[string]any)
	assert.EqualValues(t, 0, imported["prompts"])
	assert.NotEmpty(t, result["errors"])
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, Options{})
	w := doJSON(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
