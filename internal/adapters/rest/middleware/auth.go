package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ravosoft/photohub/backend/internal/auth/domain"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
	"github.com/ravosoft/photohub/backend/internal/platform/i18n"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

// Authenticator resolves a raw access token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error)
}

type AuthMiddleware struct {
	auth       Authenticator
	translator *i18n.Translator
	logger     logger.Logger
}

func NewAuthMiddleware(auth Authenticator, translator *i18n.Translator, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, translator: translator, logger: logger}
}

// Require rejects requests without a valid access token.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := ExtractToken(r)
		if raw == "" {
			m.reject(w, r, apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeTokenMissing, "missing token", http.StatusUnauthorized))
			return
		}

		principal, err := m.auth.Authenticate(ctx, raw)
		if err != nil {
			appErr, ok := apperror.As(err)
			if !ok || !appErr.IsClientError() {
				ReportError(w, r, err)
				return
			}
			m.reject(w, r, appErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
	})
}

// Optional attaches the caller when a valid token is present and passes
// the request through untouched otherwise.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ExtractToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		principal, err := m.auth.Authenticate(r.Context(), raw)
		if err != nil {
			m.logger.Debug(r.Context(), "ignoring unusable access token", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, appErr *apperror.AppError) {
	m.logger.Debug(r.Context(), "request not authenticated",
		"business_code", appErr.BusinessCode,
		"path", r.URL.Path,
	)
	message := m.translator.Translate(i18n.FromContext(r.Context()), string(appErr.BusinessCode), appErr.Message)
	WriteJSONErrorWithDetails(w, string(appErr.Code), message, appErr.HTTPStatus, map[string]any{
		"business_code": appErr.BusinessCode,
	})
}

// ExtractToken reads the bearer token, falling back to the access cookie.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}
