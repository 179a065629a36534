package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Register(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/register", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.com", req["email"])

		_ = json.NewEncoder(w).Encode(TokenBundle{
			AccessToken: "tok", TokenType: "bearer",
			User: User{ID: 1, Email: "a@x.com", Bio: "Digital forensics analyst"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	bundle, err := c.Register(context.Background(), "A", "a@x.com", "pw", "Analyst")
	require.NoError(t, err)
	assert.Equal(t, "tok", bundle.AccessToken)
	assert.Equal(t, "Digital forensics analyst", bundle.User.Bio)
}

func TestClient_Login_FormEncoded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@x.com", r.PostFormValue("username"))
		assert.Equal(t, "pw", r.PostFormValue("password"))

		_ = json.NewEncoder(w).Encode(TokenBundle{AccessToken: "tok", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	bundle, err := c.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", bundle.AccessToken)
}

func TestClient_Me_Unauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Me(context.Background(), "bad-token")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_Me_SendsBearerHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(User{ID: 1, Email: "a@x.com"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestClient_ServerErrorMessageSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"duplicate_identity","message":"Email already registered"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Register(context.Background(), "A", "a@x.com", "pw", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}
