package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
	"github.com/ravosoft/photohub/backend/internal/platform/i18n"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger     logger.Logger
	translator *i18n.Translator
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger, translator *i18n.Translator) *BaseHandler {
	return &BaseHandler{
		logger:     logger,
		translator: translator,
	}
}

// ErrorResponse is the body of every 4xx answer.
type ErrorResponse struct {
	Error        string `json:"error"`
	BusinessCode string `json:"business_code,omitempty"`
	Message      string `json:"message"`
	Context      any    `json:"context,omitempty"`
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	h.WriteJSONResponse(w, r, ErrorResponse{Error: code, Message: message}, statusCode)
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError answers client errors with their code and a translated
// message. Anything else goes to the error reporter, which logs it and
// answers a bare 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok || !appErr.IsClientError() {
		middleware.ReportError(w, r, err)
		return
	}

	message := h.translator.Translate(i18n.FromContext(r.Context()), string(appErr.BusinessCode), appErr.Message)
	h.WriteJSONResponse(w, r, ErrorResponse{
		Error:        string(appErr.Code),
		BusinessCode: string(appErr.BusinessCode),
		Message:      message,
		Context:      appErr.Details,
	}, appErr.HTTPStatus)
}

// DecodeJSON reads the request body into dst and answers 400 or 413 itself
// when that fails.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.HandleError(w, r, apperror.New(apperror.CodePayloadTooLarge, apperror.BusinessCodeInvalidBody,
			"request body too large", http.StatusRequestEntityTooLarge))
	case errors.Is(err, openapi_types.ErrValidationEmail):
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidEmail, "invalid email address"))
	case errors.Is(err, io.EOF):
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidBody, "request body is empty"))
	default:
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidBody, "malformed JSON body").WithInner(err))
	}
	return false
}

// ParseUUID parses a UUID from a string parameter
// Returns the UUID and true if successful, or writes an error response and returns false
func (h *BaseHandler) ParseUUID(w http.ResponseWriter, r *http.Request, value string, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidFormat, "Invalid "+paramName).
			WithDetails(map[string]string{"param": paramName}))
		return uuid.Nil, false
	}
	return id, true
}

// PathUUID binds a UUID route parameter.
func (h *BaseHandler) PathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidFormat, fmt.Sprintf("Invalid format for parameter %s", name)).
			WithDetails(map[string]string{"param": name}))
		return uuid.Nil, false
	}
	return id, true
}

// GetPrincipal returns the authenticated caller.
// Only call on routes behind AuthMiddleware.Require; it panics otherwise.
func (h *BaseHandler) GetPrincipal(r *http.Request) domain.Principal {
	p, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		panic("principal not found in context - route is missing authentication middleware")
	}
	return *p
}

// GetUserIDFromContext is GetPrincipal(r).UserID.
func (h *BaseHandler) GetUserIDFromContext(r *http.Request) uuid.UUID {
	return h.GetPrincipal(r).UserID
}
