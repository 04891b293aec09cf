package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// AuthHandler bundles dependencies for credential endpoints.
type AuthHandler struct {
	Auth  *service.Auth
	Users *repository.UserRepo
}

func NewAuthHandler(auth *service.Auth, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Auth: auth, Users: users}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // view | edit | admin
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type roleReq struct {
	Role string `json:"role"`
}

type userPart struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
type loginResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Signup: public self-registration, always with the lowest role.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Auth.Register(ctx, req.Email, req.Password, "view")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, userPart{Email: u.Email, Role: u.Role})
}

// Login: verify credentials and return a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		User:    userPart{Email: u.Email, Role: u.Role},
		Token:   tok.Token,
		Expires: tok.Exp,
	})
}

// Register: admin-only account creation with an explicit role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Auth.Register(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, userPart{Email: u.Email, Role: u.Role})
}

// List: admin-only listing, password digests projected out.
func (h *AuthHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// UpdateRole: admin-only role change, matching the email case-insensitively.
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Role) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.UpdateRoleByEmail(ctx, c.Param("email"), role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{Email: u.Email, Role: u.Role})
}

// Delete: admin-only account removal, matching the email case-insensitively.
func (h *AuthHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.DeleteByEmail(ctx, c.Param("email")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": c.Param("email")})
}

// Me: simple protected endpoint exposing the decoded principal.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"email": c.Get("email"),
		"role":  c.Get("role"),
	})
}
