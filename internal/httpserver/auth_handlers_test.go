package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MintCofee/tabshare/internal/models"
)

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var regResp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decode(t, rec, &regResp)
	require.Equal(t, "alice", regResp.User.Username)
	require.Equal(t, "user", regResp.User.Role)
	require.NotEmpty(t, regResp.User.ID)
	require.NotEmpty(t, regResp.Token)

	// password hash must never leak
	require.NotContains(t, rec.Body.String(), "passwordHash")
	require.NotContains(t, rec.Body.String(), "PasswordHash")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &loginResp)
	require.NotEmpty(t, loginResp.Token)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Errors, 3)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "alice", "a@x.com", "secret1")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "bob",
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email")
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "logged out")
}

func TestUnmatchedRouteReturnsJSONError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/nope", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "error")
}
