package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/utils"
)

const testSecret = "test-secret"

func newProtected(required string) *echo.Echo {
	e := echo.New()
	g := e.Group("/p")
	g.Use(JWTAuth(testSecret))
	g.Use(RequireRole(required))
	g.GET("/res", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"email": c.Get("email"),
			"role":  c.Get("role"),
		})
	})
	return e
}

func doGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p/res", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	e := newProtected("view")

	assert.Equal(t, http.StatusUnauthorized, doGet(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, "garbage").Code)

	// Signed with a different secret.
	foreign, err := utils.NewAccessToken("other-secret", "a@b.com", "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, foreign.Token).Code)

	// Expired.
	expired, err := utils.NewAccessToken(testSecret, "a@b.com", "admin", -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, expired.Token).Code)
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	e := newProtected("view")

	tok, err := utils.NewAccessToken(testSecret, "a@b.com", "view", time.Hour)
	require.NoError(t, err)
	rec := doGet(e, tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@b.com","role":"view"}`, rec.Body.String())
}

func TestRequireRoleHierarchy(t *testing.T) {
	cases := []struct {
		role     string
		required string
		want     int
	}{
		{"view", "view", http.StatusOK},
		{"view", "edit", http.StatusForbidden},
		{"edit", "view", http.StatusOK},
		{"edit", "admin", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
		{"admin", "view", http.StatusOK},
		{"unknown", "view", http.StatusForbidden},
	}
	for _, tc := range cases {
		e := newProtected(tc.required)
		tok, err := utils.NewAccessToken(testSecret, "a@b.com", tc.role, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, tc.want, doGet(e, tok.Token).Code,
			"role %s against required %s", tc.role, tc.required)
	}
}

func TestRoleRank(t *testing.T) {
	assert.Equal(t, 1, RoleRank("view"))
	assert.Equal(t, 2, RoleRank("edit"))
	assert.Equal(t, 3, RoleRank("ADMIN"))
	assert.Equal(t, 0, RoleRank("root"))
}
