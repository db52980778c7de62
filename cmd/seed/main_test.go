package main

import (
	"math/rand"
	"testing"

	"bookstore/internal/book"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRows(t *testing.T) {
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	rows := generateRows(rand.New(rand.NewSource(1)), &id, 50)
	require.Len(t, rows, 50)
	for _, row := range rows {
		require.Len(t, row, 5)
		assert.Equal(t, [16]byte(id), row[0])
		assert.True(t, book.Type(row[2].(string)).IsValid())

		price := row[4].(pgtype.Numeric)
		assert.EqualValues(t, -2, price.Exp)
		assert.GreaterOrEqual(t, price.Int.Int64(), int64(100))
	}

	host := generateRows(rand.New(rand.NewSource(1)), nil, 1)
	assert.Nil(t, host[0][0])
	assert.Equal(t, "host", scopeName(nil))
}
