package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/agency-site-backend/auth"
	"github.com/rpupo63/agency-site-backend/metrics"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	auth         *auth.Service
	secureCookie bool
}

func newAuthHandler(authService *auth.Service, secureCookie bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		auth:         authService,
		secureCookie: secureCookie,
	}
}

func (h authHandler) sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// login signs an admin in
// @Summary Log in
// @Description Opens a session, revoking earlier sessions of the same user. The token is also set as the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Username and password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "invalid username or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := decodeJSONBody(w, r, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := models.Validate(&creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		res, err := h.auth.Login(r.Context(), creds.Username, creds.Password)
		if err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			h.responder.WriteError(w, err)
			return
		}
		metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

		http.SetCookie(w, h.sessionCookie(res.Token, res.ExpiresAt, int(time.Until(res.ExpiresAt).Seconds())))
		h.responder.WriteJSON(w, LoginResponse{
			Success:   true,
			User:      res.User,
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
		})
	}
}

// logout ends the current session
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.auth.Logout(r.Context(), tokenFromRequest(r)); err != nil {
			h.logger.Warn().Err(err).Msg("logout failed")
		}
		http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0), -1))
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

// me returns the signed-in principal
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} MeResponse "user is null"
// @Router /api/auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := ctxGetPrincipal(r.Context())
		if principal == nil {
			h.responder.WriteJSONStatus(w, http.StatusUnauthorized, MeResponse{})
			return
		}
		h.responder.WriteJSON(w, MeResponse{User: principal})
	}
}
