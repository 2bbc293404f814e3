package rest

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	albumDomain "github.com/ravosoft/photohub/backend/internal/albums/domain"
	imageDomain "github.com/ravosoft/photohub/backend/internal/images/domain"
	userDomain "github.com/ravosoft/photohub/backend/internal/users/domain"
)

type RegisterRequest struct {
	Email       openapi_types.Email `json:"email"`
	Username    string              `json:"username"`
	Password    string              `json:"password"`
	DisplayName *string             `json:"displayName,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

type SetImageRequest struct {
	ImageID openapi_types.UUID `json:"imageId"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type UpdateImageRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateAlbumRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateAlbumRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AddAlbumImagesRequest struct {
	ImageIDs []openapi_types.UUID `json:"imageIds"`
}

type User struct {
	ID            openapi_types.UUID  `json:"id"`
	Email         openapi_types.Email `json:"email"`
	Username      string              `json:"username"`
	DisplayName   *string             `json:"displayName,omitempty"`
	Bio           *string             `json:"bio,omitempty"`
	AvatarImageID *openapi_types.UUID `json:"avatarImageId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type AuthResponse struct {
	User             User      `json:"user"`
	AccessToken      string    `json:"accessToken"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type Image struct {
	ID           openapi_types.UUID `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	FileName     string             `json:"fileName"`
	ContentType  string             `json:"contentType"`
	SizeBytes    int64              `json:"sizeBytes"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	HasThumbnail bool               `json:"hasThumbnail"`
	FileURL      string             `json:"fileUrl"`
	ThumbnailURL string             `json:"thumbnailUrl"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type ImagePage struct {
	Items    []Image `json:"items"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

type UploadResponse struct {
	Items []Image `json:"items"`
}

type Album struct {
	ID           openapi_types.UUID  `json:"id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Description  string              `json:"description"`
	CoverImageID *openapi_types.UUID `json:"coverImageId,omitempty"`
	ImageCount   int64               `json:"imageCount"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type AlbumList struct {
	Items []Album `json:"items"`
}

func domainUserToAPI(u *userDomain.User) User {
	return User{
		ID:            u.ID,
		Email:         openapi_types.Email(u.Email),
		Username:      u.Username,
		DisplayName:   stringToPointer(u.DisplayName),
		Bio:           stringToPointer(u.Bio),
		AvatarImageID: u.AvatarImageID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func domainImageToAPI(img *imageDomain.Image) Image {
	base := "/v1/image/" + img.ID.String()
	return Image{
		ID:           img.ID,
		Title:        img.Title,
		Description:  img.Description,
		FileName:     img.FileName,
		ContentType:  img.ContentType,
		SizeBytes:    img.SizeBytes,
		Width:        img.Width,
		Height:       img.Height,
		HasThumbnail: img.HasThumbnail(),
		FileURL:      base + "/file",
		ThumbnailURL: base + "/thumbnail",
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
}

func domainImagesToAPI(items []*imageDomain.Image) []Image {
	out := make([]Image, len(items))
	for i, img := range items {
		out[i] = domainImageToAPI(img)
	}
	return out
}

func domainPageToAPI(p *imageDomain.Page) ImagePage {
	return ImagePage{
		Items:    domainImagesToAPI(p.Items),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

func domainAlbumToAPI(a *albumDomain.Album) Album {
	return Album{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Description:  a.Description,
		CoverImageID: a.CoverImageID,
		ImageCount:   a.ImageCount,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Helper function to convert string to *string
func stringToPointer(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
