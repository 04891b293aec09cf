package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// roleRanks orders the permission levels. Authorization compares ranks
// numerically: a role satisfies a requirement when its rank is at least the
// required rank.
var roleRanks = map[string]int{
	"view":  1,
	"edit":  2,
	"admin": 3,
}

// RoleRank returns the numeric rank of a role, or 0 for unknown roles.
func RoleRank(role string) int {
	return roleRanks[strings.ToLower(role)]
}

// RequireRole returns a middleware enforcing that the authenticated user's
// role ranks at least as high as required. It assumes JWTAuth has stored
// the role claim in the context under "role". An unknown or missing role
// never satisfies any requirement.
func RequireRole(required string) echo.MiddlewareFunc {
	need := RoleRank(required)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || RoleRank(role) < need {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
