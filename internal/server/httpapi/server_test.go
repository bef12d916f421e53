package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/auth"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/layouts"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/users"
	"github.com/neverlost-dev/neverlost-api/internal/server/services"
	"github.com/neverlost-dev/neverlost-api/internal/server/store"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// newTestServer wires the full stack (router, services, repositories)
// against the in-memory store.
func newTestServer(t *testing.T) (http.Handler, *store.InMemory) {
	t.Helper()

	cfg := &config.Config{
		EndpointAddrHTTP:      ":0",
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		RequestTimeout:        5 * time.Second,
	}

	mem := store.NewInMemory()
	us := services.NewUserService(users.NewStoreRepository(mem), cfg, nopLogger{})
	ls := services.NewLayoutService(layouts.NewStoreRepository(mem), nopLogger{})
	srv := NewServer(cfg, nopLogger{}, us, ls)
	return srv.Router(), mem
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func registerAlice(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/users/register", "",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token, _ := decodeMap(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

const layoutBody = `{
	"name": "Room1",
	"description": "d",
	"objects": [{
		"id": "o1", "type": "cube", "color": "#fff",
		"position": {"x": 0, "y": 0, "z": 0},
		"rotation": {"x": 0, "y": 0, "z": 0},
		"scale": {"x": 1, "y": 1, "z": 1}
	}]
}`

// --- authentication gate ---

func TestProtectedRoute_MissingTokenBeatsValidation(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	// Body is malformed too; the authentication failure must win.
	rec := doRequest(t, h, http.MethodPost, "/api/layouts", "", `{"name":42}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", decodeMap(t, rec)["error"])
}

func TestProtectedRoute_ExpiredToken(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	expired, err := auth.GenerateToken("u1", "u1@example.com", []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	rec := doRequest(t, h, http.MethodGet, "/api/layouts", expired, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired. Please log in again.", decodeMap(t, rec)["error"])
}

func TestProtectedRoute_GarbageToken(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/layouts", "not.a.jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token. Please log in again.", decodeMap(t, rec)["error"])
}

// --- registration ---

func TestRegister_ShortUsernameWritesNothing(t *testing.T) {
	t.Parallel()

	h, mem := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/api/users/register", "",
		`{"username":"al","email":"al@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec)["error"], "username")
	assert.Zero(t, mem.CountByType("user"), "failed validation must not write to the store")
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	h, mem := newTestServer(t)

	registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/users/register", "",
		`{"username":"alice2","email":"alice@example.com","password":"secret2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists.", decodeMap(t, rec)["error"])
	assert.Equal(t, 1, mem.CountByType("user"))
}

func TestRegister_ResponseHidesPasswordHash(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/api/users/register", "",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.NotContains(t, rec.Body.String(), "password")
	user, _ := decodeMap(t, rec)["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user["username"])
	assert.NotEmpty(t, user["id"])
}

// --- login ---

func TestLogin_IdenticalFailureShapes(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	registerAlice(t, h)

	wrongPassword := doRequest(t, h, http.MethodPost, "/api/users/login", "",
		`{"email":"alice@example.com","password":"not-the-password"}`)
	noSuchUser := doRequest(t, h, http.MethodPost, "/api/users/login", "",
		`{"email":"ghost@example.com","password":"whatever1"}`)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, noSuchUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), noSuchUser.Body.String(),
		"failure responses must carry no enumeration signal")
	assert.Equal(t, "Invalid email or password.", decodeMap(t, wrongPassword)["error"])
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/users/login", "",
		`{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeMap(t, rec)
	assert.NotEmpty(t, body["token"])
}

// --- layouts ---

func TestLayouts_EndToEnd(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	token := registerAlice(t, h)

	// Create.
	rec := doRequest(t, h, http.MethodPost, "/api/layouts", token, layoutBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	layoutID, _ := decodeMap(t, rec)["layoutId"].(string)
	require.NotEmpty(t, layoutID)

	// List contains exactly that layout.
	rec = doRequest(t, h, http.MethodGet, "/api/layouts", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, layoutID, list[0]["id"])
	assert.Equal(t, "Room1", list[0]["name"])

	// Get by id.
	rec = doRequest(t, h, http.MethodGet, "/api/layouts/"+layoutID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "d", decodeMap(t, rec)["description"])
}

func TestLayoutUpdate_EmptyObjectsReplacesWholesale(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	token := registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/layouts", token, layoutBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	layoutID, _ := decodeMap(t, rec)["layoutId"].(string)

	rec = doRequest(t, h, http.MethodPut, "/api/layouts/"+layoutID, token, `{"objects":[]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	objects, _ := decodeMap(t, rec)["objects"].([]any)
	assert.Len(t, objects, 0)

	// The replacement is persisted, not just echoed.
	rec = doRequest(t, h, http.MethodGet, "/api/layouts/"+layoutID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	objects, _ = decodeMap(t, rec)["objects"].([]any)
	assert.Len(t, objects, 0)
}

func TestLayoutUpdate_CrossUserIsNotFound(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	tokenA := registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/users/register", "",
		`{"username":"bob","email":"bob@example.com","password":"secret2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tokenB, _ := decodeMap(t, rec)["token"].(string)

	rec = doRequest(t, h, http.MethodPost, "/api/layouts", tokenA, layoutBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	layoutID, _ := decodeMap(t, rec)["layoutId"].(string)

	// Bob cannot update Alice's layout; the response must not reveal that
	// the layout exists.
	rec = doRequest(t, h, http.MethodPut, "/api/layouts/"+layoutID, tokenB, `{"objects":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Layout not found or access denied.", decodeMap(t, rec)["error"])

	// Alice's objects are untouched.
	rec = doRequest(t, h, http.MethodGet, "/api/layouts/"+layoutID, tokenA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	objects, _ := decodeMap(t, rec)["objects"].([]any)
	assert.Len(t, objects, 1)
}

func TestLayoutDelete_OwnerScoped(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	token := registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/layouts", token, layoutBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	layoutID, _ := decodeMap(t, rec)["layoutId"].(string)

	rec = doRequest(t, h, http.MethodDelete, "/api/layouts/"+layoutID, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/layouts/"+layoutID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateLayout_ValidationError(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	token := registerAlice(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/layouts", token,
		`{"name":"Room1","description":"d"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec)["error"], "objects")
}

func TestPing(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	rec := doRequest(t, h, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
