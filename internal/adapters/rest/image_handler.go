package rest

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/images/application"
	"github.com/ravosoft/photohub/backend/internal/images/domain"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
)

const (
	// multipartMemory is kept in RAM per request; larger parts spill to
	// temporary files.
	multipartMemory = 8 << 20
	multipartSlack  = 1 << 20
	uploadField     = "files"
)

type ImageHandler struct {
	*BaseHandler
	service *application.ImageService
	cfg     application.Config
}

func NewImageHandler(base *BaseHandler, service *application.ImageService, cfg application.Config) *ImageHandler {
	return &ImageHandler{
		BaseHandler: base,
		service:     service,
		cfg:         cfg,
	}
}

// Upload accepts multipart field "files" and an optional "albumId".
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := h.GetUserIDFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxFilesPerUpload)*h.cfg.MaxUploadBytes+multipartSlack)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleError(w, r, application.ErrFileTooLarge)
			return
		}
		h.HandleError(w, r, apperror.Validation(apperror.BusinessCodeInvalidBody, "malformed multipart body").WithInner(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var albumID *uuid.UUID
	if values := r.MultipartForm.Value["albumId"]; len(values) > 0 && values[0] != "" {
		id, ok := h.ParseUUID(w, r, values[0], "albumId")
		if !ok {
			return
		}
		albumID = &id
	}

	headers := r.MultipartForm.File[uploadField]
	files := make([]application.UploadFile, len(headers))
	for i, fh := range headers {
		files[i] = application.UploadFile{
			FileName: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadSeekCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		}
	}

	images, err := h.service.Upload(r.Context(), ownerID, files, albumID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, UploadResponse{Items: domainImagesToAPI(images)}, http.StatusCreated)
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := bindListImagesParams(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), h.GetUserIDFromContext(r), application.ListParams{
		Page:        derefInt(params.Page),
		PageSize:    derefInt(params.PageSize),
		Query:       derefString(params.Q),
		ContentType: derefString(params.ContentType),
		AlbumID:     params.AlbumID,
		Sort:        derefString(params.Sort),
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainPageToAPI(page), http.StatusOK)
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	img, err := h.service.Get(r.Context(), h.GetUserIDFromContext(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainImageToAPI(img), http.StatusOK)
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateImageRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	img, err := h.service.Update(r.Context(), h.GetUserIDFromContext(r), id, application.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, domainImageToAPI(img), http.StatusOK)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ImageHandler) File(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	rc, img, err := h.service.OpenFile(r.Context(), h.GetUserIDFromContext(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.stream(w, r, rc, img.ContentType, img, true)
}

// Thumbnail serves the original until the thumbnail exists; that fallback
// is not cached so clients pick up the thumbnail later.
func (h *ImageHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	rc, contentType, img, err := h.service.OpenThumbnail(r.Context(), h.GetUserIDFromContext(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.stream(w, r, rc, contentType, img, img.HasThumbnail())
}

func (h *ImageHandler) stream(w http.ResponseWriter, r *http.Request, rc io.ReadCloser, contentType string, img *domain.Image, cacheable bool) {
	defer rc.Close()

	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": img.FileName}))
	header.Set("Last-Modified", img.UpdatedAt.UTC().Format(http.TimeFormat))
	if cacheable {
		header.Set("Cache-Control", "private, max-age=86400")
	} else {
		header.Set("Cache-Control", "no-cache")
	}

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn(r.Context(), "image stream interrupted", "image_id", img.ID, "error", err)
	}
}
