// Package filecache stores raw flight-offer search results as one JSON file per
// sweep tuple. The existence of a file is the only cache-hit signal.
package filecache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

const (
	// FileSuffix is appended to the tuple key to form the file name.
	FileSuffix = "_raw.json"

	// Indent is the per-level indentation of saved payloads.
	Indent = "    "

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store is a directory of cached search results.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily by EnsureDir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the cache directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("create cache dir %s: %w", s.dir, err)
	}
	return nil
}

// Path returns <dir>/<origin>_<date1>_<destination>_<date2>_raw.json.
func (s *Store) Path(t domain.Tuple) string {
	return filepath.Join(s.dir, FileName(t.Key()))
}

// FileName returns the cache file name for a key.
func FileName(key string) string {
	return key + FileSuffix
}

// Exists reports whether a cache file exists for the tuple.
// The file content is never inspected.
func (s *Store) Exists(t domain.Tuple) (bool, error) {
	_, err := os.Stat(s.Path(t))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", s.Path(t), err)
	}
}

// Save writes the payload indented with four spaces. Key order and numbers are
// kept as received and non-ASCII characters are written literally, including
// those the response escaped as \uXXXX. The file appears atomically: the
// payload is written to a temp file in the same directory and renamed into place.
func (s *Store) Save(t domain.Tuple, payload []byte) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, payload, "", Indent); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	data := unescapeNonASCII(indented.Bytes())

	tmp, err := os.CreateTemp(s.dir, "."+t.Key()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path(t)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

// unescapeNonASCII replaces \uXXXX escapes of non-ASCII characters, and
// surrogate pairs of them, with their UTF-8 encoding. Escapes of ASCII
// characters and lone surrogates are kept. src must be valid JSON.
func unescapeNonASCII(src []byte) []byte {
	if !bytes.Contains(src, []byte(`\u`)) {
		return src
	}

	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != '\\' || i+1 == len(src) {
			out = append(out, c)
			continue
		}
		if src[i+1] != 'u' {
			// Two-byte escape such as \" or \\.
			out = append(out, c, src[i+1])
			i++
			continue
		}
		r, n := decodeEscape(src[i:])
		if n == 0 {
			out = append(out, c)
			continue
		}
		out = utf8.AppendRune(out, r)
		i += n - 1
	}
	return out
}

// decodeEscape decodes the \uXXXX escape, or surrogate pair, at the start of b.
// It returns n == 0 when the escape is kept as is.
func decodeEscape(b []byte) (r rune, n int) {
	r = hexEscape(b)
	if r < utf8.RuneSelf {
		return 0, 0
	}
	if !utf16.IsSurrogate(r) {
		return r, 6
	}
	pair := utf16.DecodeRune(r, hexEscape(b[6:]))
	if pair == utf8.RuneError {
		return 0, 0
	}
	return pair, 12
}

// hexEscape returns the code unit of a \uXXXX escape at the start of b, or -1.
func hexEscape(b []byte) rune {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return -1
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 16)
	if err != nil {
		return -1
	}
	return rune(v)
}

// Load returns the cached payload for a key exactly as stored.
func (s *Store) Load(key string) ([]byte, error) {
	t, err := domain.ParseKey(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(t))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotCached, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path(t), err)
	}
	return data, nil
}

// List returns every cache entry in key order. Files that do not follow the
// naming convention are ignored, and a missing directory yields no entries.
func (s *Store) List() ([]domain.CacheEntry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.CacheEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache dir %s: %w", s.dir, err)
	}

	entries := make([]domain.CacheEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		key := strings.TrimSuffix(name, FileSuffix)
		t, err := domain.ParseKey(key)
		if err != nil {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, domain.CacheEntry{
			Tuple:      t,
			Key:        key,
			Path:       filepath.Join(s.dir, name),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

var (
	_ domain.ResultStore  = (*Store)(nil)
	_ domain.ResultReader = (*Store)(nil)
)
