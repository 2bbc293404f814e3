package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, database.IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, database.IsDuplicateKey(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	assert.True(t, database.IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.True(t, database.IsDuplicateKey(errors.New("UNIQUE constraint failed: users.email")))

	assert.False(t, database.IsDuplicateKey(nil))
	assert.False(t, database.IsDuplicateKey(&mysql.MySQLError{Number: 1213}))
	assert.False(t, database.IsDuplicateKey(&pgconn.PgError{Code: "40001"}))
	assert.False(t, database.IsDuplicateKey(errors.New("connection reset")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, database.IsNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)))
	assert.False(t, database.IsNotFound(errors.New("other")))
}
