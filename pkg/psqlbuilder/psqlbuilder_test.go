package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"user_id": int64(7)}).
		Where(squirrel.Eq{"status": "complete"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE user_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{int64(7), "complete"}, args)
}

func TestDeleteUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Delete("bookings").Where(squirrel.Eq{"id": int64(3)}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM bookings WHERE id = $1", query)
	assert.Equal(t, []interface{}{int64(3)}, args)
}
