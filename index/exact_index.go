package index

import (
	"strings"

	"github.com/huandu/skiplist"

	"go-bloom-dict/bloom"
)

// ExactIndex keeps every distinct corpus word in lexical order. It is the
// ground truth a filter's answers are checked against.
type ExactIndex struct {
	entries     *skiplist.SkipList
	occurrences int
}

func NewExactIndex() *ExactIndex {
	compareFunc := func(a, b interface{}) int {
		return strings.Compare(a.(string), b.(string))
	}
	return &ExactIndex{
		entries: skiplist.New(skiplist.GreaterThanFunc(compareFunc)),
	}
}

func FromWords(words []string) *ExactIndex {
	exact := NewExactIndex()
	exact.AddAll(words)
	return exact
}

// Add records word and returns how many times it has been seen so far.
func (exact *ExactIndex) Add(word string) int {
	word = bloom.TrimTerminators(word)
	count := 1
	if elem := exact.entries.Get(word); elem != nil {
		count = elem.Value.(int) + 1
	}
	exact.entries.Set(word, count)
	exact.occurrences++
	return count
}

func (exact *ExactIndex) AddAll(words []string) {
	for _, word := range words {
		exact.Add(word)
	}
}

func (exact *ExactIndex) Contains(word string) bool {
	return exact.entries.Get(bloom.TrimTerminators(word)) != nil
}

// Len is the number of distinct words.
func (exact *ExactIndex) Len() int {
	return exact.entries.Len()
}

// TotalOccurrences counts duplicates too, matching the corpus length.
func (exact *ExactIndex) TotalOccurrences() int {
	return exact.occurrences
}
