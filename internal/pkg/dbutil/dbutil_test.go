package dbutil

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRewritesLimitAndPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM brand_manuals WHERE name=? ORDER BY ctime DESC LIMIT ?, ?", []interface{}{"a", 10, 20})
	require.Equal(t, "SELECT id FROM brand_manuals WHERE name=$1 ORDER BY ctime DESC LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"a", 20, 10}, args)
}

func TestFinalizeWithoutLimit(t *testing.T) {
	query, args := Finalize("DELETE FROM brand_manuals WHERE id=?", []interface{}{"x"})
	require.Equal(t, "DELETE FROM brand_manuals WHERE id=$1", query)
	require.Len(t, args, 1)
}

func TestErrorCodeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	require.True(t, IsConflict(wrapped))
	require.False(t, IsForeignKeyViolation(wrapped))
	require.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	require.True(t, IsInvalidText(&pq.Error{Code: "22P02"}))
	require.False(t, IsConflict(fmt.Errorf("plain")))
}
