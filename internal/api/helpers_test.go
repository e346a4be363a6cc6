package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billing_system/internal/auth"
	"billing_system/internal/billing"
	"billing_system/internal/middleware"
	"billing_system/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret  = "test-secret"
	testBaseURL = "http://localhost:3000"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	store   *store.MemoryStore
	metrics *middleware.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemoryStore()
	creds := auth.NewCredentials(st, bcrypt.MinCost)
	m := middleware.NewMetrics()
	r := NewRouter(Deps{
		Store:       st,
		Credentials: creds,
		Sessions:    auth.NewSessions(creds, testSecret, time.Hour, "/signin"),
		Customers:   billing.NewService(st, nil),
		Metrics:     m,
		AuthSecret:  testSecret,
		BaseURL:     testBaseURL,
		Currency:    "$",
		SignInLimit: 10,
	})
	return &testServer{router: r, store: st, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login registers an account and returns a session token for it.
func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth", gin.H{"email": "ada@example.com", "password": "hunter22", "name": "Ada"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/signin", gin.H{"email": "ada@example.com", "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp SignInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
