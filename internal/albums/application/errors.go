package application

import (
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
)

var (
	ErrAlbumNotFound    = apperror.New(apperror.CodeNotFound, apperror.BusinessCodeAlbumNotFound, "album not found", http.StatusNotFound)
	ErrImageNotFound    = apperror.New(apperror.CodeNotFound, apperror.BusinessCodeImageNotFound, "image not found", http.StatusNotFound)
	ErrImageNotInAlbum  = apperror.New(apperror.CodeNotFound, apperror.BusinessCodeImageNotInAlbum, "image is not in this album", http.StatusNotFound)
	ErrCoverNotInAlbum  = apperror.Validation(apperror.BusinessCodeImageNotInAlbum, "cover image must belong to the album")
	ErrInvalidAlbumName = apperror.Validation(apperror.BusinessCodeInvalidAlbumName, "invalid album name")
	ErrInvalidAlbum     = apperror.Validation(apperror.BusinessCodeInvalidFormat, "invalid album data")
	ErrNoImages         = apperror.Validation(apperror.BusinessCodeInvalidBody, "imageIds must not be empty")
	ErrSlugExhausted    = apperror.New(apperror.CodeConflict, apperror.BusinessCodeSlugExhausted, "could not find a free slug for this name", http.StatusConflict)
)
