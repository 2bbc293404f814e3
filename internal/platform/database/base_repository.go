package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// BaseRepository carries what every repository needs: the GORM handle and
// a squirrel builder for queries assembled from optional filters. Built
// SQL uses "?" placeholders; GORM rebinds them for the active dialect.
type BaseRepository struct {
	db *gorm.DB
	SB sq.StatementBuilderType
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{
		db: db,
		SB: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Conn returns the transaction bound to ctx by TransactionManager, or the
// shared pool handle, scoped to ctx.
func (b BaseRepository) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// Raw runs a squirrel-built select and scans the result into dest.
func (b BaseRepository) Raw(ctx context.Context, builder sq.Sqlizer, dest any) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	return b.Conn(ctx).Raw(query, args...).Scan(dest).Error
}
