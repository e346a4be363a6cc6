package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"billing_system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth", gin.H{"email": "ada@example.com", "password": "hunter22", "name": "Ada"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "Ada", body["name"])
	assert.NotZero(t, body["id"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, w.Body.String(), "hunter22")

	w = s.do(t, http.MethodPost, "/api/auth", gin.H{"email": "ada@example.com", "password": "another1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())
}

func TestRegisterHandlerRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"empty password", gin.H{"email": "ada@example.com", "password": ""}, `{"error":"Email and password required"}`},
		{"missing email", gin.H{"password": "hunter22"}, `{"error":"Email and password required"}`},
		{"blank email", gin.H{"email": "  ", "password": "hunter22"}, `{"error":"Email and password required"}`},
		{"malformed json", `{"email":`, `{"error":"Invalid JSON format"}`},
		{"empty body", "", `{"error":"Invalid JSON format"}`},
		{"null body", "null", `{"error":"Invalid JSON format"}`},
		{"array body", `[{"email":"ada@example.com","password":"hunter22"}]`, `{"error":"Invalid JSON format"}`},
		{"string body", `"ada@example.com"`, `{"error":"Invalid JSON format"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/auth", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}

	_, err := s.store.FindUserByEmail(context.Background(), "ada@example.com")
	assert.Error(t, err)
}

func TestSignInHandler(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do(t, http.MethodPost, "/api/auth/signin", gin.H{"email": "ada@example.com", "password": "hunter22", "callbackUrl": "/signin"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SignInResponse](t, w)
	assert.True(t, resp.OK)
	assert.Nil(t, resp.Error)
	assert.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, resp.URL)
	assert.Equal(t, testBaseURL, *resp.URL)

	cookie := w.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, middleware.SessionCookie, cookie[0].Name)
	assert.Equal(t, resp.Token, cookie[0].Value)
	assert.True(t, cookie[0].HttpOnly)

	w = s.do(t, http.MethodPost, "/api/auth/signin", gin.H{"username": "ada@example.com", "password": "hunter22", "callbackUrl": "/customers"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[SignInResponse](t, w)
	require.NotNil(t, resp.URL)
	assert.Equal(t, "/customers", *resp.URL)
}

func TestSignInHandlerAcceptsForm(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	form := url.Values{"username": {"ada@example.com"}, "password": {"hunter22"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[SignInResponse](t, w)
	require.NotNil(t, resp.URL)
	assert.Equal(t, testBaseURL, *resp.URL)
}

func TestSignInHandlerRejects(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	for name, body := range map[string]gin.H{
		"wrong password": {"email": "ada@example.com", "password": "nope"},
		"unknown email":  {"email": "eve@example.com", "password": "hunter22"},
		"no password":    {"email": "ada@example.com"},
	} {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/auth/signin", body, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"ok":false,"error":"Invalid credentials","status":401,"url":null}`, w.Body.String())
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestSessionHandler(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/auth/session", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SessionResponse](t, w)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.NotZero(t, resp.User.ID)
	assert.NotEmpty(t, resp.Expires)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	cw := httptest.NewRecorder()
	s.router.ServeHTTP(cw, req)
	assert.Equal(t, http.StatusOK, cw.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/session", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/session", nil, token+"x").Code)
}

func TestSignOutHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/signout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"`+testBaseURL+`"}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
