package rest

import (
	"net"
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
	"github.com/ravosoft/photohub/backend/internal/auth/application"
)

type AuthHandler struct {
	*BaseHandler
	service *application.AuthService
	cookies CookieConfig
}

func NewAuthHandler(base *BaseHandler, service *application.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
		cookies:     cookies,
	}
}

// Register creates an account. It does not sign the user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), application.RegisterParams{
		Email:       string(req.Email),
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), application.LoginParams{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.writeAuthResult(w, r, result)
}

// Refresh rotates the refresh token. The cookie wins over the body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromCookie(r)
	if token == "" && r.ContentLength != 0 {
		var req RefreshRequest
		if !h.DecodeJSON(w, r, &req) {
			return
		}
		token = req.RefreshToken
	}
	if token == "" {
		h.HandleError(w, r, application.ErrTokenMissing)
		return
	}

	result, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		h.cookies.clearTokens(w)
		h.HandleError(w, r, err)
		return
	}
	h.writeAuthResult(w, r, result)
}

// Logout works with either credential so clients holding only an expired
// access token can still end their session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	if err := h.service.Logout(r.Context(), principal, refreshTokenFromCookie(r)); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.cookies.clearTokens(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.LogoutAll(r.Context(), h.GetPrincipal(r)); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.cookies.clearTokens(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context(), h.GetPrincipal(r))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

func (h *AuthHandler) writeAuthResult(w http.ResponseWriter, r *http.Request, result *application.AuthResult) {
	h.cookies.setTokens(w, result.AccessToken, result.AccessExpiresAt, result.RefreshToken, result.RefreshExpiresAt)
	h.WriteJSONResponse(w, r, AuthResponse{
		User:             domainUserToAPI(result.User),
		AccessToken:      result.AccessToken,
		ExpiresAt:        result.AccessExpiresAt,
		RefreshToken:     result.RefreshToken,
		RefreshExpiresAt: result.RefreshExpiresAt,
	}, http.StatusOK)
}

func refreshTokenFromCookie(r *http.Request) string {
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// clientIP expects chi's RealIP middleware to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
