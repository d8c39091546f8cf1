package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePageDefaultsToOne(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		require.Equal(t, 1, ParsePage(raw), "raw=%q", raw)
	}
	require.Equal(t, 7, ParsePage("7"))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 1, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 2, TotalPages(13, 10))
}

func TestClampWithinRange(t *testing.T) {
	w := Clamp(13, 2, 10)
	require.Equal(t, 2, w.Page)
	require.Equal(t, 10, w.Offset)
	require.Equal(t, 10, w.Limit)
}

func TestClampBeyondLastPage(t *testing.T) {
	w := Clamp(13, 99, 10)
	require.Equal(t, 2, w.Page)
	require.Equal(t, 10, w.Offset)
}

func TestClampEmptySource(t *testing.T) {
	w := Clamp(0, 5, 10)
	require.Equal(t, 1, w.Page)
	require.Equal(t, 0, w.Offset)
}

func TestSliceSplitsThirteenIntoTenAndThree(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	first := Slice(items, 1, 10)
	require.Len(t, first.Items, 10)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrev)
	require.Equal(t, 2, first.TotalPages)

	second := Slice(items, 2, 10)
	require.Len(t, second.Items, 3)
	require.False(t, second.HasNext)
	require.True(t, second.HasPrev)
}

func TestSliceClampsToLastPage(t *testing.T) {
	page := Slice([]int{1, 2, 3}, 9, 10)
	require.Equal(t, 1, page.Number)
	require.Len(t, page.Items, 3)
}

func TestNewPageNilItems(t *testing.T) {
	page := NewPage[int](nil, 0, Clamp(0, 1, 10), 10)
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.TotalPages)
}
