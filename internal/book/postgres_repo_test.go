package book

import (
	"testing"

	"bookstore/internal/crud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBy(t *testing.T) {
	valid := map[string]string{
		"":                 "created_at ASC, id ASC",
		"name":             "name ASC, id ASC",
		"Name DESC":        "name DESC, id ASC",
		"price asc":        "price ASC, id ASC",
		"  publish_date  ": "publish_date ASC, id ASC",
		"created_at desc":  "created_at DESC, id ASC",
		"type desc":        "type DESC, id ASC",
	}
	for in, want := range valid {
		got, err := orderBy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"tenant_id", "name sideways", "name desc extra", "name; DROP TABLE books"} {
		_, err := orderBy(in)
		assert.ErrorIs(t, err, crud.ErrInvalidSorting, in)
	}
}
