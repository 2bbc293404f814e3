package rest

import (
	"net/http"

	authApp "github.com/ravosoft/photohub/backend/internal/auth/application"
	"github.com/ravosoft/photohub/backend/internal/users/application"
)

type UserHandler struct {
	*BaseHandler
	service *application.UserService
	auth    *authApp.AuthService
	cookies CookieConfig
}

func NewUserHandler(base *BaseHandler, service *application.UserService, auth *authApp.AuthService, cookies CookieConfig) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
		auth:        auth,
		cookies:     cookies,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), h.GetUserIDFromContext(r))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), h.GetUserIDFromContext(r), application.UpdateProfileParams{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

// ChangePassword keeps the current session and signs out all others.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.ChangePassword(r.Context(), h.GetPrincipal(r), req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req SetImageRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.SetAvatar(r.Context(), h.GetUserIDFromContext(r), req.ImageID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

func (h *UserHandler) ClearAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.ClearAvatar(r.Context(), h.GetUserIDFromContext(r))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

// DeleteAccount requires the password again. Images, albums and sessions
// are removed asynchronously by their own contexts.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req DeleteAccountRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if err := h.service.DeleteAccount(r.Context(), h.GetUserIDFromContext(r), req.Password); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.cookies.clearTokens(w)
	w.WriteHeader(http.StatusNoContent)
}
