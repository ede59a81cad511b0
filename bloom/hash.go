package bloom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// HashFunc is the single hash primitive a filter is salted from. It must be
// deterministic: the same bytes always produce the same value, in every run.
type HashFunc func(key []byte) uint64

const (
	HashMurmur3 = "murmur3"
	HashXXHash  = "xxhash"
)

// Murmur3 is 64-bit MurmurHash3 (x64_128, lower half) with seed 0.
func Murmur3(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// XXHash is xxHash64 with seed 0.
func XXHash(key []byte) uint64 {
	return xxhash.Sum64(key)
}

func HashFuncByName(name string) (HashFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HashMurmur3:
		return Murmur3, nil
	case HashXXHash:
		return XXHash, nil
	}
	return nil, fmt.Errorf("unknown hash function %q", name)
}

// TrimTerminators strips trailing line terminators from a corpus entry or a candidate.
func TrimTerminators(word string) string {
	return strings.TrimRight(word, "\r\n")
}

// appendSaltedKey appends decimal(index) followed by the word, e.g. "2apple".
// Repeating this for every index simulates hashCount independent hash functions
// from one primitive.
func appendSaltedKey(buffer []byte, index uint64, word string) []byte {
	buffer = strconv.AppendUint(buffer, index, 10)
	return append(buffer, word...)
}

type positioner struct {
	hash      HashFunc
	hashCount uint64
	size      uint64
	buffer    []byte
}

func newPositioner(hash HashFunc, hashCount uint64, size uint) *positioner {
	return &positioner{
		hash:      hash,
		hashCount: hashCount,
		size:      uint64(size),
		buffer:    make([]byte, 0, 64),
	}
}

// forEach calls fn with the bit position of every salted key of word until fn returns false.
func (p *positioner) forEach(word string, fn func(position uint) bool) {
	for index := uint64(0); index < p.hashCount; index++ {
		p.buffer = appendSaltedKey(p.buffer[:0], index, word)
		if !fn(uint(p.hash(p.buffer) % p.size)) {
			return
		}
	}
}
