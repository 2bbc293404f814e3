package rest

import (
	"net/http"
	"time"

	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
)

const (
	RefreshTokenCookie = "refresh_token"
	refreshCookiePath  = "/v1/auth"
)

type CookieConfig struct {
	Secure bool
	Domain string
}

// sameSite allows the configured cross-origin frontends to send the
// cookies, which browsers only accept together with Secure.
func (c CookieConfig) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (c CookieConfig) setTokens(w http.ResponseWriter, access string, accessExp time.Time, refresh string, refreshExp time.Time) {
	http.SetCookie(w, c.cookie(middleware.AccessTokenCookie, access, "/", accessExp))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, refresh, refreshCookiePath, refreshExp))
}

func (c CookieConfig) clearTokens(w http.ResponseWriter) {
	for _, ck := range []*http.Cookie{
		c.cookie(middleware.AccessTokenCookie, "", "/", time.Unix(0, 0)),
		c.cookie(RefreshTokenCookie, "", refreshCookiePath, time.Unix(0, 0)),
	} {
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

func (c CookieConfig) cookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   c.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	}
}
