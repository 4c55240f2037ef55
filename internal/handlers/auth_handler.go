package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"optionlab/internal/auth"
	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/middleware"
	"optionlab/internal/services"
	"optionlab/internal/session"
)

// stateCookieName holds the signed OAuth state between login and callback.
const stateCookieName = "oauth_state"

// AuthHandler handles the identity-provider login flow and session endpoints.
type AuthHandler struct {
	provider     auth.Provider
	states       *auth.StateSigner
	sessions     *session.Manager
	userService  services.UserServicer
	auditService services.AuditServicer
	frontendURL  string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	provider auth.Provider,
	states *auth.StateSigner,
	sessions *session.Manager,
	userService services.UserServicer,
	auditService services.AuditServicer,
	frontendURL string,
) *AuthHandler {
	return &AuthHandler{
		provider:     provider,
		states:       states,
		sessions:     sessions,
		userService:  userService,
		auditService: auditService,
		frontendURL:  frontendURL,
	}
}

// MeResponse represents the signed-in user's identity claims.
type MeResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) setStateCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    value,
		Path:     "/api",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.sessions.Secure(),
		SameSite: http.SameSiteLaxMode,
	})
}

// BeginLogin redirects the browser to the identity provider.
// @Summary     Begin login
// @Description Redirect to the identity provider's authorization endpoint
// @Tags        auth
// @Success     302 "Redirect to identity provider"
// @Failure     502 {object} ErrorResponse "Identity provider unavailable"
// @Router      /google-login [get]
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	state, err := h.states.Issue()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	target, err := h.provider.AuthCodeURL(c.Request.Context(), state)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err))
		return
	}

	h.setStateCookie(c, state, int(h.states.TTL().Seconds()))
	c.Redirect(http.StatusFound, target)
}

// CompleteLogin handles the identity provider callback.
// @Summary     Complete login
// @Description Exchange the authorization code, start a session and redirect to the frontend
// @Tags        auth
// @Param       code  query string true "Authorization code"
// @Param       state query string true "Login state"
// @Success     302 "Redirect to frontend with session cookie"
// @Failure     400 {object} ErrorResponse "Invalid state or missing code"
// @Failure     502 {object} ErrorResponse "Identity provider rejected the login"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /google-oauth-redirect [get]
func (h *AuthHandler) CompleteLogin(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || cookieState != state {
		respondWithError(c, apperrors.ErrInvalidState)
		return
	}
	if err := h.states.Verify(state); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidState, err))
		return
	}
	h.setStateCookie(c, "", -1)

	code := c.Query("code")
	if code == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing authorization code"))
		return
	}

	identity, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, auth.ErrProviderUnavailable) {
			respondWithError(c, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err))
			return
		}
		respondWithError(c, apperrors.Wrap(apperrors.ErrUpstreamAuth, err))
		return
	}

	user, created, err := h.userService.FindOrCreateUser(identity.Email, identity.GivenName, identity.FamilyName, identity.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	s := &session.Session{
		Email:        identity.Email,
		Name:         identity.Name,
		GivenName:    identity.GivenName,
		FamilyName:   identity.FamilyName,
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		IDToken:      identity.IDToken,
		TokenExpiry:  identity.Expiry,
	}
	if err := h.sessions.Create(c.Request.Context(), s); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if err := h.sessions.SetCookie(c.Writer, s); err != nil {
		_ = h.sessions.Destroy(c.Request.Context(), s.ID)
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionLogin, "user", user.ID, c.ClientIP(),
		map[string]interface{}{"created": created})

	c.Redirect(http.StatusFound, h.frontendURL)
}

// Logout ends the current session.
// @Summary     Log out
// @Description Delete the server-side session and expire the cookie
// @Tags        auth
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	s, ok := middleware.GetSession(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.sessions.Destroy(c.Request.Context(), s.ID); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.sessions.ClearCookie(c.Writer)

	if user, err := h.userService.GetUserByEmail(s.Email); err == nil {
		h.auditService.Log(user.ID, services.AuditActionLogout, "user", user.ID, c.ClientIP(), nil)
	} else {
		logger.Get().Warnw("logout for unknown user", "email", s.Email, "error", err)
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Me returns the signed-in user's identity claims.
// @Summary     Current user
// @Description Get the identity claims cached in the current session
// @Tags        auth
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} MeResponse "Current user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	s, ok := middleware.GetSession(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		Name:       s.Name,
		Email:      s.Email,
		GivenName:  s.GivenName,
		FamilyName: s.FamilyName,
	})
}
