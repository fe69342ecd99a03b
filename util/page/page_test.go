package page_test

import (
	"testing"

	"shareit/util/apperr"
	"shareit/util/page"

	"github.com/stretchr/testify/require"
)

func TestNew_SnapsToPageBoundary(t *testing.T) {
	a, err := page.New(5, 10)
	require.NoError(t, err)
	b, err := page.New(9, 10)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, page.Page{Offset: 0, Limit: 10}, a)

	next, err := page.New(10, 10)
	require.NoError(t, err)
	require.Equal(t, page.Page{Offset: 10, Limit: 10}, next)

	p, err := page.New(7, 3)
	require.NoError(t, err)
	require.Equal(t, page.Page{Offset: 6, Limit: 3}, p)
}

func TestNew_Invalid(t *testing.T) {
	for _, tc := range []struct{ from, size int }{{-1, 10}, {0, 0}, {0, -5}} {
		_, err := page.New(tc.from, tc.size)
		require.Error(t, err)
		require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	}
}
