package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverano/tasklist-be/internal/auth"
	"github.com/dverano/tasklist-be/internal/models"
)

const testSecret = "test-secret"

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := auth.NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := tm.Issue(models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID, "every token should carry a unique id")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, -time.Minute)
	require.NoError(t, err)

	token, err := tm.Issue(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenManager_VerifyTampered(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := auth.NewTokenManager("a-different-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(models.User{ID: 1, Username: "mallory"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)

	_, err = tm.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestMiddleware_MissingToken(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	handler := tm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing auth token"}`, rec.Body.String())
}

func TestMiddleware_InvalidAndExpiredCollapse(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := auth.NewTokenManager(testSecret, -time.Minute)
	require.NoError(t, err)

	expiredToken, err := expired.Issue(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	handler := tm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	for name, header := range map[string]string{
		"garbage":          "Bearer garbage",
		"expired":          "Bearer " + expiredToken,
		"no-bearer-prefix": "Token abc",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, name)
	}
}

func TestMiddleware_InjectsClaims(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := tm.Issue(models.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	var got *auth.Claims
	handler := tm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "bob", got.Username)
}
