// internal/words/words.go
//
// Dictionary loading and lookup for the word grid.
//
// Responsibilities:
//   - Load a word list from a plain text file, a .zip archive holding a
//     text file, or the embedded default list.
//   - Normalise to upper case, drop non A–Z entries and words that can
//     never fit on the grid.
//   - Keep the original file order; hint tie-breaks depend on it.
//
// Environment variables (read by the caller, see internal/config):
//   WORDS_FILE=/path/to/english_dic.zip

package words

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/robalobadob/wordgrid/assets"
)

var (
	// ErrEmpty is returned when no usable word survives loading.
	ErrEmpty = errors.New("words: dictionary is empty")
	// ErrNoTextInArchive is returned for a .zip with no .txt member.
	ErrNoTextInArchive = errors.New("words: archive holds no .txt file")
)

// Dictionary is an ordered, de-duplicated word list with O(1) membership.
type Dictionary struct {
	list []string
	set  map[string]struct{}
}

// New builds a Dictionary from raw words. Words are trimmed and upper-cased;
// anything empty, non-alphabetic or longer than maxLen is dropped. A maxLen
// of zero or less disables the length filter.
func New(raw []string, maxLen int) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		w = normalize(w)
		if w == "" || !isAlpha(w) {
			continue
		}
		if maxLen > 0 && len(w) > maxLen {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	return d
}

// Contains reports whether w is in the dictionary. Lookup is case-insensitive.
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[normalize(w)]
	return ok
}

// Words returns the words in load order. Callers must not modify the slice.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	return d.list
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.list)
}

// StartLetters returns, in alphabetical order, every letter that begins at
// least one word.
func (d *Dictionary) StartLetters() []byte {
	var seen [26]bool
	for _, w := range d.Words() {
		seen[w[0]-'A'] = true
	}
	var out []byte
	for i, ok := range seen {
		if ok {
			out = append(out, byte('A'+i))
		}
	}
	return out
}

// Load reads a dictionary from path. An empty path selects the embedded
// default list. Paths ending in .zip are read as archives.
func Load(p string, maxLen int) (*Dictionary, error) {
	var (
		raw []string
		err error
	)
	switch {
	case p == "":
		raw, err = assets.DictionaryList()
	case strings.EqualFold(path.Ext(p), ".zip"):
		raw, err = readZip(p)
	default:
		raw, err = readWordFile(p)
	}
	if err != nil {
		return nil, err
	}
	d := New(raw, maxLen)
	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(p string) ([]string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", p, err)
	}
	defer f.Close()
	return readLines(f)
}

// readZip loads the first .txt member of a zip archive.
func readZip(p string) ([]string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", p, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("words: open %s in %s: %w", f.Name, p, err)
		}
		defer rc.Close()
		return readLines(rc)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoTextInArchive, p)
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

func normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
