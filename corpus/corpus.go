package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"go-bloom-dict/bloom"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Corpus is the ordered list of known words a filter is built from.
type Corpus struct {
	words []string
}

func (corpus Corpus) Words() []string {
	return corpus.words
}

func (corpus Corpus) Len() int {
	return len(corpus.words)
}

// Load reads one word per line from path, decoding it with the named IANA encoding.
func Load(path string, encodingName string) (Corpus, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("open corpus: %w", err)
	}
	defer fp.Close()

	reader, err := Decoder(fp, encodingName)
	if err != nil {
		return Corpus{}, err
	}
	words, err := ReadLines(reader)
	if err != nil {
		return Corpus{}, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return Corpus{words: words}, nil
}

// Decoder wraps r so that it yields UTF-8. An empty name or utf-8 passes r through.
func Decoder(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}

func CheckEncoding(encodingName string) error {
	_, err := lookupEncoding(encodingName)
	return err
}

// lookupEncoding returns a nil encoding for UTF-8.
func lookupEncoding(encodingName string) (encoding.Encoding, error) {
	name := strings.TrimSpace(encodingName)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedEncoding, encodingName, err)
	}
	// 名称已知但没有实现
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encodingName)
	}
	return enc, nil
}

// ReadLines returns every line of r with its terminator stripped. A trailing
// line without a terminator is kept; empty lines are kept. Lines have no length limit.
func ReadLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0)
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, bloom.TrimTerminators(line))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
