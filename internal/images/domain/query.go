package domain

import "github.com/google/uuid"

type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortLargest  SortOrder = "largest"
	SortPosition SortOrder = "position" // album order, only with AlbumID
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortLargest, SortPosition:
		return true
	}
	return false
}

// ListQuery filters one owner's images.
type ListQuery struct {
	OwnerID     uuid.UUID
	Page        int
	PageSize    int
	Query       string
	ContentType string
	AlbumID     *uuid.UUID
	Sort        SortOrder
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type Page struct {
	Items    []*Image
	Total    int64
	Page     int
	PageSize int
}
