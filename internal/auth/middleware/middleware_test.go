package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-papergen/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("alice", "teacher")
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Sub)
	assert.Equal(t, "teacher", c.Role)

	_, err = NewAuthService("other-secret").Parse(tok)
	assert.Error(t, err)
}

func login(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
	return rr
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAuthService("test-secret")
	h := LoginHandler(a, Credentials{User: "admin", PassHash: string(hash)})

	rr := login(t, h, `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "access_token")

	assert.Equal(t, http.StatusUnauthorized, login(t, h, `{"username":"admin","password":"nope"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, login(t, h, `{"username":"bob","password":"s3cret"}`).Code)
	assert.Equal(t, http.StatusBadRequest, login(t, h, `{`).Code)
}

func TestLoginHandlerDevLogin(t *testing.T) {
	a := NewAuthService("test-secret")

	dev := LoginHandler(a, Credentials{User: "admin", DevLogin: true})
	assert.Equal(t, http.StatusOK, login(t, dev, `{"username":"admin","password":"admin"}`).Code)

	prod := LoginHandler(a, Credentials{User: "admin"})
	assert.Equal(t, http.StatusUnauthorized, login(t, prod, `{"username":"admin","password":"admin"}`).Code)
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("test-secret")
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	tok, err := a.IssueJWT("alice", "student")
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", gotSub)
	assert.Equal(t, "student", gotRole)
}
