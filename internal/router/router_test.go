package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cafe-menu/internal/config"
	"cafe-menu/internal/services"
	"cafe-menu/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

type testEnv struct {
	srv   *httptest.Server
	store *store.Store
	cfg   config.Config
}

func newTestEnv(t *testing.T, maxUpload int64) *testEnv {
	t.Helper()

	cfg := config.Config{
		Port:           "0",
		JWTSecret:      "test-secret",
		DataDir:        t.TempDir(),
		UploadDir:      t.TempDir(),
		MaxUploadBytes: maxUpload,
	}

	st, err := store.Open(cfg.DataDir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Migrate())

	users := services.NewUserService(st, zerolog.Nop())
	require.NoError(t, users.Bootstrap())

	r, err := SetupRouter(st, cfg, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: st, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	resp, body := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestLogin_WrongCredentials(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	resp, body := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, body["token"], "failed login must not issue a token")
}

func TestCreateMenuItem_Scenario(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPost, "/api/menu", token, map[string]any{
		"name":     "اسپرسو",
		"category": "coffee",
		"price":    45000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, false, data["has_dual_pricing"])
	require.Equal(t, true, data["is_available"])

	// the public listing now includes it
	resp, body = env.request(t, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	found := false
	for _, raw := range body["data"].([]any) {
		item := raw.(map[string]any)
		if item["id"] == id {
			found = true
			require.Equal(t, "اسپرسو", item["name"])
		}
	}
	require.True(t, found)
}

func TestMenuMutations_AuthRequired(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	// missing token
	resp, _ := env.request(t, http.MethodPost, "/api/menu", "", map[string]any{"name": "x", "price": 1})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// invalid token
	resp, _ = env.request(t, http.MethodPost, "/api/menu", "garbage-token", map[string]any{"name": "x", "price": 1})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateMenuItem_NotFound(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, _ := env.request(t, http.MethodPut, "/api/menu/missing", token, map[string]any{"price": 100})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateMenuItem_ValidationError(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPost, "/api/menu", token, map[string]any{
		"name":  "",
		"price": 100,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "validation_error", body["error"])
}

func TestSettings_AdminUsernameConflict(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	users := services.NewUserService(env.store, zerolog.Nop())
	_, err := users.Create("manager", "secret123", "admin")
	require.NoError(t, err)

	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPut, "/api/cafe-settings", token, map[string]any{
		"cafe_name":      "کافه رست",
		"admin_username": "manager",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "conflict", body["error"])

	// no partial write
	resp, body = env.request(t, http.MethodGet, "/api/cafe-settings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, body["data"])
}

func TestSettings_Upsert(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPut, "/api/cafe-settings", token, map[string]any{
		"cafe_name": "کافه رست",
		"location":  "اردبیل",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "default", data["id"])

	resp, body = env.request(t, http.MethodGet, "/api/cafe-settings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := body["data"].(map[string]any)
	require.Equal(t, "کافه رست", got["cafe_name"])
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPost, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Equal(t, "admin", user["username"])
	require.Nil(t, user["password"], "password hash must never be serialized")

	resp, _ = env.request(t, http.MethodPost, "/api/auth/verify", "bad.token.here", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp, body := env.request(t, http.MethodPut, "/api/auth/password", token, map[string]string{
		"newPassword": "12345",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "weak_password", body["error"])

	resp, _ = env.request(t, http.MethodPut, "/api/auth/password", token, map[string]string{
		"newPassword": "brandnew99",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env.login(t, "admin", "brandnew99")
}

func uploadRequest(t *testing.T, url, token string, payload []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url+"/api/upload-image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUploadImage_Lifecycle(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	resp := uploadRequest(t, env.srv.URL, token, pngBytes)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded struct {
		Success  bool   `json:"success"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	require.True(t, uploaded.Success)
	require.Equal(t, "/uploads/"+uploaded.Filename, uploaded.URL)

	// served back as a static file
	served, err := http.Get(env.srv.URL + uploaded.URL)
	require.NoError(t, err)
	defer served.Body.Close()
	require.Equal(t, http.StatusOK, served.StatusCode)
	content, err := io.ReadAll(served.Body)
	require.NoError(t, err)
	require.Equal(t, pngBytes, content)

	// listed
	listResp, listBody := env.request(t, http.MethodGet, "/api/images", token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	require.Len(t, listBody["images"].([]any), 1)

	// deleted
	delResp, _ := env.request(t, http.MethodDelete, "/api/images/"+uploaded.Filename, token, nil)
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	gone, err := http.Get(env.srv.URL + uploaded.URL)
	require.NoError(t, err)
	defer gone.Body.Close()
	require.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestUploadImage_TooLargeWritesNothing(t *testing.T) {
	const limit = 1024
	env := newTestEnv(t, limit)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	payload := make([]byte, limit*4)
	copy(payload, pngBytes)

	resp := uploadRequest(t, env.srv.URL, token, payload)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	entries, err := os.ReadDir(env.cfg.UploadDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestUploadImage_AuthRequired(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	resp := uploadRequest(t, env.srv.URL, "", pngBytes)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJSONContentTypeRequired(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	token := env.login(t, "admin", services.DefaultAdminPassword)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/menu", bytes.NewReader([]byte(`{"name":"x","price":1}`)))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNoCacheHeadersOnAPI(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	resp, _ := env.request(t, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}
