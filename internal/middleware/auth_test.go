package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/internal/auth"
	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

// stubAuthService resolves against a fixed in-memory user set.
type stubAuthService struct {
	users map[string]*models.User
}

var _ services.AuthService = (*stubAuthService)(nil)

func (s *stubAuthService) Register(*dto.RegisterRequest) (*dto.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuthService) Login(*dto.LoginRequest) (*dto.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuthService) ResolveToken(token string) (*models.User, error) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, ok := s.users[claims.UserID]
	if !ok || !user.IsActive() {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

func (s *stubAuthService) ResolveSessionUser(userID string) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok || !user.IsActive() {
		return nil, apperrors.NewUnauthorizedError("unknown session user")
	}
	return user, nil
}

func newAuthTestRouter(svc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionMiddleware("test-secret", "test_session", 3600))
	r.Use(middleware.IdentityResolver(svc))

	r.GET("/login-session/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.SessionUserKey, c.Param("id"))
		_ = session.Save()
		c.Status(http.StatusOK)
	})
	r.GET("/login-legacy/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.LegacySessionUserKey, c.Param("id"))
		_ = session.Save()
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.GetUserID(c)})
	})
	r.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, bearer string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_AnonymousRejected(t *testing.T) {
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{}})
	w := doRequest(r, "/whoami", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken_KnownUserAccepted(t *testing.T) {
	user := activeUser("user-1", "max@example.at", false)
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{"user-1": user}})

	token := auth.GenerateToken("user-1", "max@example.at")
	w := doRequest(r, "/whoami", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestBearerToken_UnknownUserRejected(t *testing.T) {
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{}})

	token := auth.GenerateToken("ghost", "geist@example.at")
	w := doRequest(r, "/whoami", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken_SuspendedUserRejected(t *testing.T) {
	user := activeUser("user-1", "max@example.at", false)
	user.Status = models.UserStatusSuspended
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{"user-1": user}})

	token := auth.GenerateToken("user-1", "max@example.at")
	w := doRequest(r, "/whoami", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionCookie_Authenticates(t *testing.T) {
	user := activeUser("user-1", "max@example.at", false)
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{"user-1": user}})

	login := doRequest(r, "/login-session/user-1", "", nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)

	w := doRequest(r, "/whoami", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestSessionCookie_DeletedUserLockedOut(t *testing.T) {
	user := activeUser("user-1", "max@example.at", false)
	svc := &stubAuthService{users: map[string]*models.User{"user-1": user}}
	r := newAuthTestRouter(svc)

	login := doRequest(r, "/login-session/user-1", "", nil)
	cookies := login.Result().Cookies()

	// Removing the user invalidates the still-valid cookie.
	delete(svc.users, "user-1")
	w := doRequest(r, "/whoami", "", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLegacySession_AcceptedWithoutLookup(t *testing.T) {
	// The legacy "uid" shape is honored even for ids the store no longer
	// knows; only the id is carried, no admin claim.
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{}})

	login := doRequest(r, "/login-legacy/old-user", "", nil)
	cookies := login.Result().Cookies()

	w := doRequest(r, "/whoami", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "old-user")

	w = doRequest(r, "/admin", "", cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_Gate(t *testing.T) {
	admin := activeUser("admin-1", "admin@example.at", true)
	user := activeUser("user-1", "max@example.at", false)
	r := newAuthTestRouter(&stubAuthService{users: map[string]*models.User{
		"admin-1": admin,
		"user-1":  user,
	}})

	// Anonymous → 401.
	w := doRequest(r, "/admin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated non-admin → 403.
	w = doRequest(r, "/admin", auth.GenerateToken("user-1", "max@example.at"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin → 200.
	w = doRequest(r, "/admin", auth.GenerateToken("admin-1", "admin@example.at"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func activeUser(id, email string, isAdmin bool) *models.User {
	u := &models.User{
		Email:   email,
		Status:  models.UserStatusActive,
		IsAdmin: isAdmin,
	}
	u.ID = id
	return u
}
