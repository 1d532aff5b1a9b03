package request

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginatedRequestLimit(t *testing.T) {
	require.Equal(t, 10, PaginatedRequest{}.Limit())
	require.Equal(t, 25, PaginatedRequest{PerPage: 25}.Limit())
	require.Equal(t, 100, PaginatedRequest{PerPage: 500}.Limit())
}

func TestPaginatedRequestOffset(t *testing.T) {
	require.Equal(t, 0, PaginatedRequest{}.Offset())
	require.Equal(t, 0, PaginatedRequest{Page: 1, PerPage: 20}.Offset())
	require.Equal(t, 40, PaginatedRequest{Page: 3, PerPage: 20}.Offset())
}
