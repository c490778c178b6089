package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	got := DSN("todo", "s3cret", "db.internal", "3306", "todolist")
	assert.Equal(t, "todo:s3cret@tcp(db.internal:3306)/todolist?charset=utf8mb4&parseTime=true&loc=UTC", got)
}

func TestDSNWithoutPassword(t *testing.T) {
	got := DSN("todo", "", "localhost", "3306", "todolist")
	assert.Equal(t, "todo@tcp(localhost:3306)/todolist?charset=utf8mb4&parseTime=true&loc=UTC", got)
}
