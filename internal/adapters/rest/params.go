package rest

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
)

// ListImagesParams are the query parameters of GET /v1/image and
// GET /v1/album/{id}/images.
type ListImagesParams struct {
	Page        *int                `form:"page,omitempty"`
	PageSize    *int                `form:"pageSize,omitempty"`
	Q           *string             `form:"q,omitempty"`
	ContentType *string             `form:"contentType,omitempty"`
	AlbumID     *openapi_types.UUID `form:"albumId,omitempty"`
	Sort        *string             `form:"sort,omitempty"`
}

func bindListImagesParams(r *http.Request) (ListImagesParams, error) {
	var params ListImagesParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
		{"q", &params.Q},
		{"contentType", &params.ContentType},
		{"albumId", &params.AlbumID},
		{"sort", &params.Sort},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return params, apperror.Validation(apperror.BusinessCodeInvalidFormat, fmt.Sprintf("Invalid format for parameter %s", b.name)).
				WithDetails(map[string]string{"param": b.name})
		}
	}
	return params, nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
