package rest

import (
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/albums/application"
	"github.com/ravosoft/photohub/backend/internal/albums/domain"
	imageApp "github.com/ravosoft/photohub/backend/internal/images/application"
	imageDomain "github.com/ravosoft/photohub/backend/internal/images/domain"
)

type AlbumHandler struct {
	*BaseHandler
	service *application.AlbumService
	images  *imageApp.ImageService
}

func NewAlbumHandler(base *BaseHandler, service *application.AlbumService, images *imageApp.ImageService) *AlbumHandler {
	return &AlbumHandler{
		BaseHandler: base,
		service:     service,
		images:      images,
	}
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	album, err := h.service.Create(r.Context(), h.GetUserIDFromContext(r), application.CreateParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainAlbumToAPI(album), http.StatusCreated)
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.service.List(r.Context(), h.GetUserIDFromContext(r))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	items := make([]Album, len(albums))
	for i, a := range albums {
		items[i] = domainAlbumToAPI(a)
	}
	h.WriteJSONResponse(w, r, AlbumList{Items: items}, http.StatusOK)
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	album, err := h.service.Get(r.Context(), h.GetUserIDFromContext(r), id)
	h.writeAlbum(w, r, album, err)
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateAlbumRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	album, err := h.service.Update(r.Context(), h.GetUserIDFromContext(r), id, application.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
	})
	h.writeAlbum(w, r, album, err)
}

// Delete removes the album only. Its images stay in the library.
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), h.GetUserIDFromContext(r), id); err != nil {
		h.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListImages pages through the album in its own order. Search and
// content-type filters apply as on the library listing.
func (h *AlbumHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	params, err := bindListImagesParams(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	sort := derefString(params.Sort)
	if sort == "" {
		sort = string(imageDomain.SortPosition)
	}
	page, err := h.images.List(r.Context(), h.GetUserIDFromContext(r), imageApp.ListParams{
		Page:        derefInt(params.Page),
		PageSize:    derefInt(params.PageSize),
		Query:       derefString(params.Q),
		ContentType: derefString(params.ContentType),
		AlbumID:     &id,
		Sort:        sort,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainPageToAPI(page), http.StatusOK)
}

func (h *AlbumHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddAlbumImagesRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	album, err := h.service.AddImages(r.Context(), h.GetUserIDFromContext(r), id, req.ImageIDs)
	h.writeAlbum(w, r, album, err)
}

func (h *AlbumHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	imageID, ok := h.PathUUID(w, r, "imageId")
	if !ok {
		return
	}

	album, err := h.service.RemoveImage(r.Context(), h.GetUserIDFromContext(r), id, imageID)
	h.writeAlbum(w, r, album, err)
}

func (h *AlbumHandler) SetCover(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SetImageRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	album, err := h.service.SetCover(r.Context(), h.GetUserIDFromContext(r), id, req.ImageID)
	h.writeAlbum(w, r, album, err)
}

func (h *AlbumHandler) writeAlbum(w http.ResponseWriter, r *http.Request, album *domain.Album, err error) {
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainAlbumToAPI(album), http.StatusOK)
}
