package gin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/auth"
	"github.com/bmazoyer/scribe/inmem"
	"github.com/bmazoyer/scribe/jwt"
	"github.com/bmazoyer/scribe/log"
	"github.com/bmazoyer/scribe/realtime"
)

type testEnv struct {
	router  http.Handler
	stores  Stores
	encoder *jwt.EncodeDecoder
	rt      *realtime.Service
}

func createRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	stores := Stores{
		Notes:         inmem.NewNoteStore(),
		Users:         inmem.NewUserStore(),
		Collaborators: inmem.NewCollaboratorStore(),
		Folders:       inmem.NewFolderStore(),
		Tasks:         inmem.NewTaskStore(),
		Labels:        inmem.NewLabelStore(),
		Attachments:   inmem.NewAttachmentStore(),
		Index:         inmem.NewNoteIndex(),
	}

	logger := log.New("test")
	encoder := jwt.NewEncodeDecoder([]byte("test-key"))
	resolver := &access.Resolver{Notes: stores.Notes, Collaborators: stores.Collaborators}
	rt := realtime.NewService(stores.Notes, resolver, false, logger)

	router, err := New(stores, encoder, rt, logger)
	require.NoError(t, err)

	return &testEnv{router: router, stores: stores, encoder: encoder, rt: rt}
}

// createUser inserts a user with a usable password and returns it with a
// bearer token.
func (e *testEnv) createUser(t *testing.T, name, email string) (*scribe.User, string) {
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := &scribe.User{Name: name, Email: email, PasswordHash: hash}
	require.NoError(t, e.stores.Users.Upsert(user))

	token, err := e.encoder.Encode(user.ID)
	require.NoError(t, err)

	return user, fmt.Sprintf("bearer %s", token)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &wrapper))
	require.NoError(t, json.Unmarshal(wrapper.Data, out))
}

func TestPing(t *testing.T) {
	env := createRouter(t)

	resp := env.do(t, "GET", "/api/ping", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	env := createRouter(t)

	var tts = []struct {
		method string
		path   string
	}{
		{"GET", "/api/me"},
		{"GET", "/api/notes"},
		{"POST", "/api/notes"},
		{"GET", "/api/tasks"},
		{"GET", "/api/folders"},
		{"GET", "/api/labels"},
	}

	for _, tt := range tts {
		resp := env.do(t, tt.method, tt.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code, "%s %s", tt.method, tt.path)
	}
}
