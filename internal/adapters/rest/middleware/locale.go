package middleware

import (
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/platform/i18n"
)

// LangCookie lets browsers pin a language across requests.
const LangCookie = "lang"

// Locale negotiates the response language from ?lang=, the lang cookie and
// Accept-Language, in that order.
func Locale(translator *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookie string
			if c, err := r.Cookie(LangCookie); err == nil {
				cookie = c.Value
			}
			tag := translator.Negotiate(r.URL.Query().Get("lang"), cookie, r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), tag)))
		})
	}
}
