package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExactIndex(t *testing.T) {
	exact := NewExactIndex()
	require.Equal(t, 0, exact.Len())
	require.False(t, exact.Contains("apple"))

	require.Equal(t, 1, exact.Add("cherry"))
	require.Equal(t, 1, exact.Add("apple\n"))
	require.Equal(t, 1, exact.Add("banana"))
	require.Equal(t, 2, exact.Add("apple"))

	require.Equal(t, 3, exact.Len())
	require.Equal(t, 4, exact.TotalOccurrences())
	require.True(t, exact.Contains("apple"))
	require.True(t, exact.Contains("banana\r\n"))
	require.False(t, exact.Contains("date"))
}

func TestFromWords(t *testing.T) {
	exact := FromWords([]string{"date", "apple", "cherry", "banana", "apple"})
	require.Equal(t, 4, exact.Len())
	require.Equal(t, 5, exact.TotalOccurrences())
	for _, word := range []string{"apple", "banana", "cherry", "date"} {
		require.True(t, exact.Contains(word), word)
	}
}

func TestExactIndexEmptyWord(t *testing.T) {
	exact := FromWords([]string{"", "\n"})
	require.Equal(t, 1, exact.Len())
	require.Equal(t, 2, exact.TotalOccurrences())
	require.True(t, exact.Contains(""))
	require.Equal(t, 3, exact.Add(""))
}
