// internal/words/words.go
//
// Dictionary management for the game.
//
// Responsibilities:
//   - Load the word list from a file (WORDS_FILE) or fall back to the
//     embedded default from the assets package.
//   - Normalize entries (trim, lowercase, drop comments, blanks and any
//     line that is not purely a–z).
//   - Answer membership queries for round scoring.
//
// The package keeps one process-wide default dictionary, initialized once
// via Init. Tests and the CLI build their own with New/LoadFile.

package words

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/boggle/assets"
)

// ErrEmpty is returned when a word list contains no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable set of lowercase words.
type Dictionary struct {
	list []string            // unique words in load order
	set  map[string]struct{} // membership
}

// New builds a dictionary from list, normalizing and de-duplicating entries.
func New(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = normalize(w)
		if w == "" {
			continue
		}
		if _, ok := d.set[w]; ok {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	return d
}

// Load reads one word per line from r.
func Load(r io.Reader) (*Dictionary, error) {
	var list []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		list = append(list, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	d := New(list)
	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// LoadFile reads a newline-delimited word list from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Embedded returns the dictionary shipped in the assets package.
func Embedded() (*Dictionary, error) {
	list, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	d := New(list)
	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Contains reports whether w is in the dictionary (case-insensitive).
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Words returns the dictionary entries. Callers must not modify the slice.
func (d *Dictionary) Words() []string { return d.list }

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.list) }

// normalize trims and lowercases w; returns "" for comments, blanks, and
// anything that is not purely a–z.
func normalize(w string) string {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
		return ""
	}
	return w
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// --- process-wide default ---

var (
	initOnce   sync.Once
	defaultDic *Dictionary
	initialErr error
)

// Init loads the default dictionary exactly once. An empty path selects the
// embedded word list.
func Init(path string) error {
	initOnce.Do(func() {
		if path != "" {
			defaultDic, initialErr = LoadFile(path)
			return
		}
		defaultDic, initialErr = Embedded()
	})
	return initialErr
}

// Default returns the dictionary loaded by Init, or nil before Init.
func Default() *Dictionary { return defaultDic }

// Stats returns the number of words in the default dictionary.
func Stats() int {
	if defaultDic == nil {
		return 0
	}
	return defaultDic.Len()
}
