package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/reco-hub/reco-backend/internal/auth"
)

type stubVerifier struct {
	identity *auth.Identity
	err      error
	calls    int
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	s.calls++
	return s.identity, s.err
}

func newAuthedRouter(v auth.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", auth.RequireAuth(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": auth.PrincipalEmail(c), "name": auth.PrincipalName(c)})
	})
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	v := &stubVerifier{identity: &auth.Identity{Email: "a@x.com"}}
	r := newAuthedRouter(v)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, v.calls, "verifier must not be called without a token")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	v := &stubVerifier{identity: &auth.Identity{Email: "a@x.com"}}
	r := newAuthedRouter(v)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token123"} {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.Zero(t, v.calls)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}
	r := newAuthedRouter(v)

	w := get(r, "Bearer sometoken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, v.calls)
}

func TestRequireAuth_NoEmailIdentity(t *testing.T) {
	v := &stubVerifier{identity: &auth.Identity{UID: "u1"}}
	r := newAuthedRouter(v)

	w := get(r, "Bearer sometoken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	v := &stubVerifier{identity: &auth.Identity{UID: "u1", Email: "a@x.com", Name: "Alice"}}
	r := newAuthedRouter(v)

	w := get(r, "Bearer sometoken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@x.com","name":"Alice"}`, w.Body.String())
}
