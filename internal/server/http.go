package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
	"github.com/ravosoft/photohub/backend/internal/platform/i18n"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// NewHTTPHandler builds the middleware pipeline in front of the routers.
// Error reporting sits outermost so panics anywhere below still produce the
// fixed 500 body.
func NewHTTPHandler(
	config Config,
	router *rest.Router,
	reporter *middleware.ErrorReporter,
	translator *i18n.Translator,
	log logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(reporter.Middleware)
	r.Use(middleware.RequestLogger(log))
	r.Use(staticFiles(config.StaticDir))
	r.Use(corsHandler(config.CORSOrigins))
	r.Use(middleware.LimitJSONBody(config.MaxJSONBodyBytes))
	r.Use(middleware.Locale(translator))

	router.Mount(r)
	return r
}

func NewHTTPServer(config Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              config.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Uploads and file streams are long; only idle keep-alives are bounded.
		IdleTimeout: 60 * time.Second,
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Language", "Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// staticFiles serves existing files under dir for GET and HEAD and passes
// everything else through.
func staticFiles(dir string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if dir == "" {
			return next
		}
		files := http.FileServer(http.Dir(dir))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			name := path.Clean("/" + r.URL.Path)
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
			if err != nil || info.IsDir() {
				next.ServeHTTP(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}
}
