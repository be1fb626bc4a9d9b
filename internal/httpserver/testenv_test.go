package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/hash"
	mwauth "github.com/MintCofee/tabshare/internal/middleware/auth"
	"github.com/MintCofee/tabshare/internal/models"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/service"
)

type testEnv struct {
	E      *echo.Echo
	DB     *gorm.DB
	Secret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tab{}, &models.Song{}, &models.Favorite{}))

	secret := []byte("test-secret")

	userRepo := &repo.UserRepo{DB: db}
	tabRepo := &repo.TabRepo{DB: db}
	songRepo := &repo.SongRepo{DB: db}

	tabSvc := &service.TabService{Tabs: tabRepo, Users: userRepo}

	deps := &Deps{
		Auth:  &AuthHandler{Svc: &service.AuthService{Users: userRepo, JWTSecret: secret}},
		Tabs:  &TabHandler{Svc: tabSvc},
		Songs: &SongHandler{Svc: &service.SongService{Songs: songRepo, Tabs: tabRepo}},
		Users: &UserHandler{Users: userRepo, Tabs: tabSvc},
		Stats: &StatsHandler{Svc: &service.StatsService{Tabs: tabRepo, Songs: songRepo, Users: userRepo}},
		MW:    mwauth.New(secret),
	}

	e := echo.New()
	Register(e, deps)

	return &testEnv{E: e, DB: db, Secret: secret}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (env *testEnv) register(t *testing.T, username, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (env *testEnv) registerAdmin(t *testing.T, username string) string {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	admin := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		Role:         "admin",
	}
	require.NoError(t, env.DB.Create(&admin).Error)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": "password",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	return resp.Token
}

func validTabPayload() map[string]any {
	return map[string]any{
		"title":      "Wonderwall",
		"artist":     "Oasis",
		"difficulty": "beginner",
		"genre":      "rock",
		"tabContent": "e|---3---3---3---|\nB|---3---3---3---|",
	}
}

func (env *testEnv) createTab(t *testing.T, token string, overrides map[string]any) models.Tab {
	t.Helper()

	payload := validTabPayload()
	for k, v := range overrides {
		payload[k] = v
	}

	rec := env.do(t, http.MethodPost, "/api/v1/tabs", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Tab models.Tab `json:"tab"`
	}
	decode(t, rec, &resp)
	return resp.Tab
}
