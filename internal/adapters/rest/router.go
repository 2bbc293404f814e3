package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
)

// Router mounts every handler. It holds the auth middleware because the
// auth routes mix public, optional and protected endpoints.
type Router struct {
	auth   *AuthHandler
	users  *UserHandler
	images *ImageHandler
	albums *AlbumHandler
	health *HealthHandler
	authMW *middleware.AuthMiddleware
}

func NewRouter(
	auth *AuthHandler,
	users *UserHandler,
	images *ImageHandler,
	albums *AlbumHandler,
	health *HealthHandler,
	authMW *middleware.AuthMiddleware,
) *Router {
	return &Router{
		auth:   auth,
		users:  users,
		images: images,
		albums: albums,
		health: health,
		authMW: authMW,
	}
}

func (rt *Router) Mount(r chi.Router) {
	r.Get("/healthz", rt.health.GetLiveness)
	r.Get("/readyz", rt.health.GetReadiness)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", rt.authRoutes)
		r.Route("/user", rt.userRoutes)
		r.Route("/image", rt.imageRoutes)
		r.Route("/album", rt.albumRoutes)
	})
}

func (rt *Router) authRoutes(r chi.Router) {
	r.Post("/register", rt.auth.Register)
	r.Post("/login", rt.auth.Login)
	r.Post("/refresh", rt.auth.Refresh)
	r.With(rt.authMW.Optional).Post("/logout", rt.auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(rt.authMW.Require)
		r.Post("/logout-all", rt.auth.LogoutAll)
		r.Get("/me", rt.auth.Me)
	})
}

func (rt *Router) userRoutes(r chi.Router) {
	r.Use(rt.authMW.Require)
	r.Get("/", rt.users.GetProfile)
	r.Patch("/", rt.users.UpdateProfile)
	r.Delete("/", rt.users.DeleteAccount)
	r.Put("/password", rt.users.ChangePassword)
	r.Put("/avatar", rt.users.SetAvatar)
	r.Delete("/avatar", rt.users.ClearAvatar)
}

func (rt *Router) imageRoutes(r chi.Router) {
	r.Use(rt.authMW.Require)
	r.Post("/", rt.images.Upload)
	r.Get("/", rt.images.List)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", rt.images.Get)
		r.Patch("/", rt.images.Update)
		r.Delete("/", rt.images.Delete)
		r.Get("/file", rt.images.File)
		r.Get("/thumbnail", rt.images.Thumbnail)
	})
}

func (rt *Router) albumRoutes(r chi.Router) {
	r.Use(rt.authMW.Require)
	r.Post("/", rt.albums.Create)
	r.Get("/", rt.albums.List)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", rt.albums.Get)
		r.Patch("/", rt.albums.Update)
		r.Delete("/", rt.albums.Delete)
		r.Get("/images", rt.albums.ListImages)
		r.Post("/images", rt.albums.AddImages)
		r.Delete("/images/{imageId}", rt.albums.RemoveImage)
		r.Put("/cover", rt.albums.SetCover)
	})
}
