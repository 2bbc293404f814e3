package application

import (
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
)

var (
	ErrImageNotFound = apperror.New(apperror.CodeNotFound, apperror.BusinessCodeImageNotFound, "image not found", http.StatusNotFound)
	ErrAlbumNotFound = apperror.New(apperror.CodeNotFound, apperror.BusinessCodeAlbumNotFound, "album not found", http.StatusNotFound)

	ErrNoFiles         = apperror.Validation(apperror.BusinessCodeNoFiles, "no files uploaded")
	ErrTooManyFiles    = apperror.Validation(apperror.BusinessCodeTooManyFiles, "too many files in one upload")
	ErrCorruptImage    = apperror.Validation(apperror.BusinessCodeCorruptImage, "image could not be decoded")
	ErrInvalidQuery    = apperror.Validation(apperror.BusinessCodeInvalidFormat, "invalid list parameters")
	ErrInvalidMetadata = apperror.Validation(apperror.BusinessCodeInvalidFormat, "invalid image metadata")

	ErrFileTooLarge = apperror.New(apperror.CodePayloadTooLarge, apperror.BusinessCodeFileTooLarge, "file exceeds the upload limit", http.StatusRequestEntityTooLarge)
	ErrUnsupported  = apperror.New(apperror.CodeUnsupportedMedia, apperror.BusinessCodeUnsupportedFileType, "unsupported file type", http.StatusUnsupportedMediaType)
)
