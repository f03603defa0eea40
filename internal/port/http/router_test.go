package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/42roma/monitor/internal/adapter/feeds"
	"github.com/42roma/monitor/internal/adapter/file"
	"github.com/42roma/monitor/internal/adapter/oauth"
	"github.com/42roma/monitor/internal/authz"
	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/actionlog"
	"github.com/42roma/monitor/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSessionSecret = "test-secret"

var (
	adminCaller = &entity.Identity{Login: "boss", Kind: "admin"}
	staffCaller = &entity.Identity{Login: "staff1", Kind: "student"}
	randoCaller = &entity.Identity{Login: "rando", Kind: "student"}
)

// newTestRouter wires the full route table over flat-file storage in a temp
// directory, with cache and publisher disabled.
func newTestRouter(t *testing.T) (*chi.Mux, *SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	dir := t.TempDir()

	repo := file.NewAnnouncementFileRepository(filepath.Join(dir, "announcements"), logger)
	policy := authz.NewPolicy([]string{"staff1"}, actionlog.Nop{}, logger)
	announcementUC := usecase.NewAnnouncementUseCase(repo, policy, nil, nil, actionlog.Nop{}, logger)
	bannerUC := usecase.NewBannerUseCase(
		file.NewBannerFileRepository(filepath.Join(dir, "banner.json"), entity.Banner{}),
		actionlog.Nop{}, logger)
	maintenanceUC := usecase.NewMaintenanceUseCase(
		file.NewMaintenanceFileRepository(filepath.Join(dir, "maintenance.json")),
		actionlog.Nop{}, logger)

	sessions := NewSessionManager(testSessionSecret, time.Hour, logger)
	oauthClient := oauth.NewClient(&config.OAuthConfig{}, logger)
	feedsClient := feeds.NewClient(&config.FeedsConfig{}, logger)

	router := NewRouter(
		sessions,
		NewAuthHandler(oauthClient, sessions, logger),
		NewDashboardHandler(announcementUC, bannerUC, maintenanceUC, feedsClient, oauthClient, "", logger),
		NewAnnouncementHandler(announcementUC, logger),
		NewStaffHandler(bannerUC, maintenanceUC, actionlog.Nop{}, "", logger),
		logger,
	)
	return router, sessions
}

func sessionCookie(t *testing.T, sessions *SessionManager, identity *entity.Identity) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, identity))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func doRequest(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_NoSessionRedirectsToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/announcements", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRoutes_UnauthorizedUserForbidden(t *testing.T) {
	router, sessions := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	req.AddCookie(sessionCookie(t, sessions, randoCaller))

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", strings.TrimSpace(rec.Body.String()))
}

func TestRoutes_MissingFieldsBadRequest(t *testing.T) {
	router, sessions := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(`{"title":"Cluster closed"}`))
	req.AddCookie(sessionCookie(t, sessions, adminCaller))

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missing_fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "All required fields must be filled in.", resp.Error)
	assert.Equal(t, []string{"description", "start_date", "end_date"}, resp.MissingFields)
}

func TestRoutes_UnknownAnnouncementNotFound(t *testing.T) {
	router, sessions := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/announcements/doesnotexist", nil)
	req.AddCookie(sessionCookie(t, sessions, adminCaller))

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_CreateThenListRoundTrip(t *testing.T) {
	router, sessions := newTestRouter(t)
	cookie := sessionCookie(t, sessions, staffCaller)

	body := `{"title":"Cluster closed","description":"Exams","start_date":"2024-05-10T09:00","end_date":"2024-05-10T18:00"}`
	req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(body))
	req.AddCookie(cookie)

	rec := doRequest(router, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID        string `json:"id"`
		CreatedBy string `json:"created_by"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.ID, 12)
	assert.Equal(t, "staff1", created.CreatedBy)

	req = httptest.NewRequest(http.MethodGet, "/announcements", nil)
	req.AddCookie(cookie)

	rec = doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestSession_TamperedCookieResolvesToNoIdentity(t *testing.T) {
	router, sessions := newTestRouter(t)

	cookie := sessionCookie(t, sessions, adminCaller)
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	req.AddCookie(cookie)

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSession_ExpiredCookieResolvesToNoIdentity(t *testing.T) {
	router, _ := newTestRouter(t)

	claims := sessionClaims{
		Login: "boss",
		Kind:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSessionSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: signed})

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
