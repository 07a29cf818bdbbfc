package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/auth"
	"github.com/lumastory/lumastory/internal/infrastructure/ratelimit"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/testutil"
	"github.com/lumastory/lumastory/internal/shared/authorization"
	"github.com/lumastory/lumastory/internal/shared/config"
	"github.com/lumastory/lumastory/internal/shared/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "lumastory-test",
		AccessExpMinutes: 5,
	})
}

// echoRouter returns the user id and role seen by the handler.
func echoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(constants.ContextKeyUserID),
			"role":    c.GetString(constants.ContextKeyUserRole),
		})
	})
	r.GET("/t", handlers...)
	return r
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	jwtSvc := newJWTService()
	token, _, err := jwtSvc.Generate("user-1", authorization.RoleUser)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtSvc, "access_token", testutil.NewMockLogger())
	router := echoRouter(mw.RequireAuth())

	tests := []struct {
		name       string
		setup      func(req *http.Request)
		wantStatus int
	}{
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "access_token", Value: token}) }, http.StatusOK},
		{"no token", func(req *http.Request) {}, http.StatusUnauthorized},
		{"malformed header", func(req *http.Request) { req.Header.Set("Authorization", "Token "+token) }, http.StatusUnauthorized},
		{"garbage token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer abc.def.ghi") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
			}
		})
	}
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	jwtSvc := newJWTService()
	mw := NewAuthMiddleware(jwtSvc, "", testutil.NewMockLogger())
	router := echoRouter(mw.OptionalAuth())

	t.Run("anonymous passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("invalid token treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})
}

type mockEnforcer struct {
	EnforceFunc func(role, resource, action string) (bool, error)
}

func (m *mockEnforcer) Enforce(role, resource, action string) (bool, error) {
	return m.EnforceFunc(role, resource, action)
}

type mockUserLookup struct {
	GetByIDFunc func(ctx context.Context, id string) (*user.User, error)
}

func (m *mockUserLookup) GetByID(ctx context.Context, id string) (*user.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func storedUser(t *testing.T, id string, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, id+"@example.com", "", vo.TierPro, role, nil, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func TestPermissionMiddleware_RequirePermission(t *testing.T) {
	enforcer := &mockEnforcer{EnforceFunc: func(role, resource, action string) (bool, error) {
		return role == "superadmin", nil
	}}

	tests := []struct {
		name       string
		userID     string
		tokenRole  string
		stored     *user.User
		wantStatus int
	}{
		{"no session", "", "", nil, http.StatusUnauthorized},
		{"unknown user", "ghost", "superadmin", nil, http.StatusForbidden},
		{"stored superadmin", "admin-1", "superadmin", storedUser(t, "admin-1", authorization.RoleSuperadmin), http.StatusOK},
		{"stale token role", "user-1", "superadmin", storedUser(t, "user-1", authorization.RoleUser), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserLookup{GetByIDFunc: func(_ context.Context, _ string) (*user.User, error) {
				return tt.stored, nil
			}}
			mw := NewPermissionMiddleware(enforcer, users, testutil.NewMockLogger())
			setSession := func(c *gin.Context) {
				if tt.userID != "" {
					c.Set(constants.ContextKeyUserID, tt.userID)
					c.Set(constants.ContextKeyUserRole, tt.tokenRole)
				}
			}
			router := echoRouter(setSession, mw.RequirePermission(authorization.ResourceAdminContent, authorization.ActionWrite))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestPermissionMiddleware_LookupError(t *testing.T) {
	users := &mockUserLookup{GetByIDFunc: func(_ context.Context, _ string) (*user.User, error) {
		return nil, assert.AnError
	}}
	mw := NewPermissionMiddleware(&mockEnforcer{}, users, testutil.NewMockLogger())
	router := echoRouter(func(c *gin.Context) { c.Set(constants.ContextKeyUserID, "u1") }, mw.RequirePermission("admin.users", "read"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), testutil.NewMockLogger())
	router := echoRouter(rl.Limit("contact", ratelimit.Rule{Limit: 2, Window: time.Hour}))

	call := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000").Code)
	second := call("10.0.0.1:1000")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := call("10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000").Code, "other clients have their own window")
}

func TestRateLimiter_AllowsWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), testutil.NewMockLogger())
	router := echoRouter(rl.Limit("contact", ratelimit.Rule{Limit: 1, Window: time.Hour}))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequireCronSecret(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{"match", "s3cret", "s3cret", http.StatusOK},
		{"mismatch", "s3cret", "guess", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"unconfigured secret", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := echoRouter(RequireCronSecret(tt.secret, testutil.NewMockLogger()))
			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderCronSecret, tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	router := echoRouter(RequestID())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Len(t, w.Header().Get(constants.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(constants.HeaderXRequestID, "req-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(testutil.NewMockLogger()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.ErrMsgInternalServerError)
}
