package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/futtest/voting-system/internal/api/metrics"
	apimiddleware "github.com/futtest/voting-system/internal/api/middleware"
	"github.com/futtest/voting-system/internal/core/domain"
	"github.com/futtest/voting-system/internal/core/ports"
)

// AuthHandler owns the session lifecycle endpoints: it verifies credentials
// through the auth service and binds the resulting identity to a cookie-backed
// session token.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	cookieName  string
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
		sessionTTL:  sessionTTL,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerRequest struct {
	Login           string `json:"login" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type userPayload struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

type authResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

type sessionStateResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *userPayload `json:"user,omitempty"`
}

// SessionState reports whether the request carries a live session. Not gated:
// any caller may ask, and the answer never fails.
//
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionStateResponse
// @Router       /api/session [get]
func (h *AuthHandler) SessionState(c echo.Context) error {
	identity, ok := c.Get(apimiddleware.ContextIdentityKey).(*domain.SessionIdentity)
	if !ok || identity == nil {
		return c.JSON(http.StatusOK, sessionStateResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, sessionStateResponse{
		Authenticated: true,
		User:          &userPayload{Login: identity.Login, Role: identity.Role},
	})
}

// Login verifies credentials and issues a session cookie. A re-login while
// already authenticated replaces the previous session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	identity, err := h.authService.Login(ctx, req.Login, req.Password)
	if err != nil {
		return err
	}

	// Replace any session the caller already holds.
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.sessions.Destroy(ctx, cookie.Value)
	}

	token, err := h.sessions.Create(ctx, *identity)
	if err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.Inc()

	c.SetCookie(h.sessionCookie(token, int(h.sessionTTL.Seconds())))
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		User:    userPayload{Login: identity.Login, Role: identity.Role},
	})
}

// Logout destroys the current session and clears the cookie. Idempotent:
// succeeds with or without a prior session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.sessions.Destroy(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Register creates a member account. Registration does not log the member in;
// the client follows up with a normal login.
//
// @Summary      Register a member account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Login, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		User:    userPayload{Login: user.Login, Role: user.Role},
	})
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
