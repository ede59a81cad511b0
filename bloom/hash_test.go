package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendSaltedKey(t *testing.T) {
	require.Equal(t, "0apple", string(appendSaltedKey(nil, 0, "apple")))
	require.Equal(t, "12Hello World", string(appendSaltedKey(nil, 12, "Hello World")))
	require.Equal(t, "3", string(appendSaltedKey(nil, 3, "")))

	buffer := []byte("stale")
	require.Equal(t, "1x", string(appendSaltedKey(buffer[:0], 1, "x")))
}

func TestPositionerUsesSaltedKeys(t *testing.T) {
	var seen []string
	recording := func(key []byte) uint64 {
		seen = append(seen, string(key))
		return uint64(len(seen))
	}

	var positions []uint
	newPositioner(recording, 3, 10).forEach("apple", func(position uint) bool {
		positions = append(positions, position)
		return true
	})
	require.Equal(t, []string{"0apple", "1apple", "2apple"}, seen)
	require.Equal(t, []uint{1, 2, 3}, positions)

	seen = nil
	newPositioner(recording, 3, 10).forEach("apple", func(uint) bool { return false })
	require.Equal(t, []string{"0apple"}, seen)
}

func TestHashFuncsAreDeterministic(t *testing.T) {
	for _, hash := range []HashFunc{Murmur3, XXHash} {
		require.Equal(t, hash([]byte("0apple")), hash([]byte("0apple")))
		require.NotEqual(t, hash([]byte("0apple")), hash([]byte("1apple")))
	}
}

func TestHashFuncByName(t *testing.T) {
	hash, err := HashFuncByName("murmur3")
	require.NoError(t, err)
	require.Equal(t, Murmur3([]byte("x")), hash([]byte("x")))

	hash, err = HashFuncByName(" XXHash ")
	require.NoError(t, err)
	require.Equal(t, XXHash([]byte("x")), hash([]byte("x")))

	hash, err = HashFuncByName("")
	require.NoError(t, err)
	require.Equal(t, Murmur3([]byte("x")), hash([]byte("x")))

	_, err = HashFuncByName("md5")
	require.Error(t, err)
}

func TestTrimTerminators(t *testing.T) {
	require.Equal(t, "apple", TrimTerminators("apple\n"))
	require.Equal(t, "apple", TrimTerminators("apple\r\n"))
	require.Equal(t, "apple", TrimTerminators("apple\n\n"))
	require.Equal(t, " apple ", TrimTerminators(" apple "))
	require.Equal(t, "", TrimTerminators("\n"))
}
