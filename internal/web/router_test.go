package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ainutools/ainconv/internal/cache"
	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T, config Config) (*httptest.Server, db.Repository) {
	t.Helper()
	conv, err := cache.New(64)
	require.NoError(t, err)
	repo, err := lexicon.OpenRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(conv, repo, log, config).Handler(done))
	t.Cleanup(srv.Close)
	return srv, repo
}

func do(t *testing.T, method, url, body string, header http.Header) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func apiKey() http.Header {
	return http.Header{"X-Api-Key": {testAPIKey}}
}

func TestConvertEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult string
		wantFrom   string
	}{
		{"detect source", `{"text":"aynu","to":"kana"}`, http.StatusOK, "アイヌ", "Latn"},
		{"explicit source", `{"text":"айну","to":"Latn","from":"cyrl"}`, http.StatusOK, "aynu", "Cyrl"},
		{"auto source", `{"text":"イタㇰ","to":"cyrillic","from":"auto"}`, http.StatusOK, "итак", "Kana"},
		{"missing to", `{"text":"aynu"}`, http.StatusBadRequest, "", ""},
		{"bad to", `{"text":"aynu","to":"greek"}`, http.StatusBadRequest, "", ""},
		{"mixed is not a target", `{"text":"aynu","to":"mixed"}`, http.StatusBadRequest, "", ""},
		{"bad from", `{"text":"aynu","to":"kana","from":"unknown"}`, http.StatusBadRequest, "", ""},
		{"bad json", `{"text":`, http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := do(t, http.MethodPost, srv.URL+"/api/v1/convert", tt.body, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, out["error"])
				return
			}
			assert.Equal(t, tt.wantResult, out["result"])
			assert.Equal(t, tt.wantFrom, out["from"])
		})
	}
}

func TestConvertBodyTooLarge(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	body := `{"to":"kana","text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/convert", body, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestDetectEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	resp, out := do(t, http.MethodGet, srv.URL+"/api/v1/detect?text=%D0%B0%D0%B9%D0%BD%D1%83", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "айну", out["text"])
	assert.Equal(t, "Cyrl", out["script"])
	assert.Equal(t, "public, max-age=60", resp.Header.Get("Cache-Control"))
}

func TestSyllablesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	resp, out := do(t, http.MethodGet, srv.URL+"/api/v1/syllables?text=aynu+itak", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{
		[]any{"ay", "nu"},
		[]any{"i", "tak"},
	}, out["words"])

	_, out = do(t, http.MethodGet, srv.URL+"/api/v1/syllables?text="+url.QueryEscape("айну"), "", nil)
	assert.Equal(t, []any{[]any{"ay", "nu"}}, out["words"])

	_, out = do(t, http.MethodGet, srv.URL+"/api/v1/syllables", "", nil)
	assert.Equal(t, []any{}, out["words"])
}

func TestLexiconLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, Config{AdminAPIKey: testAPIKey, RateLimit: 100})
	base := srv.URL + "/api/v1/lexicon"

	resp, out := do(t, http.MethodPost, base, `{"latn":"Aynu","gloss":"human"}`, apiKey())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "aynu", out["latn"])
	assert.Equal(t, "アイヌ", out["kana"])
	assert.Equal(t, "айну", out["cyrl"])
	assert.Equal(t, []any{"ay", "nu"}, out["syllables"])
	assert.Equal(t, "human", out["gloss"])

	resp, _ = do(t, http.MethodPost, base, `{"latn":"itak"}`, apiKey())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, out = do(t, http.MethodGet, base+"/aynu", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "human", out["gloss"])

	resp, out = do(t, http.MethodGet, base+"/%D0%B0%D0%B9%D0%BD%D1%83", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "lookup by Cyrillic spelling")
	assert.Equal(t, "aynu", out["latn"])

	resp, out = do(t, http.MethodGet, base+"?prefix=a&limit=10", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, out["data"], 1)
	pagination := out["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total"])
	assert.Equal(t, float64(10), pagination["limit"])

	_, out = do(t, http.MethodGet, base, "", nil)
	assert.Len(t, out["data"], 2)
	assert.Equal(t, float64(25), out["pagination"].(map[string]any)["limit"])

	resp, _ = do(t, http.MethodDelete, base+"/aynu", "", apiKey())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, base+"/aynu", "", apiKey())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, base+"/aynu", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLexiconListPageRange(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	base := srv.URL + "/api/v1/lexicon"

	resp, out := do(t, http.MethodGet, base+"?page=21474837&limit=100", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, out["data"])

	resp, out = do(t, http.MethodGet, base+"?page=21474838&limit=100", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "page out of range", out["error"])

	resp, _ = do(t, http.MethodGet, base+"?page=9223372036854775807", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLexiconCreateValidation(t *testing.T) {
	srv, _ := newTestServer(t, Config{AdminAPIKey: testAPIKey, RateLimit: 100})
	base := srv.URL + "/api/v1/lexicon"

	resp, _ := do(t, http.MethodPost, base, `{"latn":"  "}`, apiKey())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, base, `{"latn":"アイヌ"}`, apiKey())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLexiconWritesNeedAPIKey(t *testing.T) {
	srv, _ := newTestServer(t, Config{AdminAPIKey: testAPIKey, RateLimit: 100})
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/lexicon", `{"latn":"aynu"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/v1/lexicon/aynu", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLexiconWritesDisabledWithoutKey(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/lexicon", `{"latn":"aynu"}`, apiKey())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRateLimitApplies(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 2})
	url := srv.URL + "/api/v1/detect?text=aynu"

	for range 2 {
		resp, _ := do(t, http.MethodGet, url, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := do(t, http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 100})
	resp, _ := do(t, http.MethodGet, srv.URL+"/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
