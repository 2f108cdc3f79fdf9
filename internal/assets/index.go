package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Index maps each directory under the assets root to the files found inside
// it. It is built once per run and read-only afterwards.
type Index struct {
	root    string
	buckets map[string][]string
}

// BuildIndex recursively enumerates every file under root, skipping paths
// that match one of the doublestar exclude globs (evaluated against the
// slash-normalized path relative to root). An unreadable root is fatal: no
// partial index is ever returned.
func BuildIndex(root string, excludeGlobs []string) (*Index, error) {
	index := &Index{
		root:    filepath.Clean(root),
		buckets: make(map[string][]string),
	}

	err := filepath.WalkDir(index.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(index.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, glob := range excludeGlobs {
			if ok, _ := doublestar.Match(glob, rel); ok {
				return nil
			}
		}
		dir := normalizeDir(filepath.Dir(path))
		index.buckets[dir] = append(index.buckets[dir], filepath.ToSlash(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan assets root %s: %w", root, err)
	}
	return index, nil
}

// Root returns the cleaned assets root path.
func (ix *Index) Root() string {
	return ix.root
}

// Files returns the files recorded for a containing directory.
func (ix *Index) Files(dir string) []string {
	return append([]string(nil), ix.buckets[normalizeDir(dir)]...)
}

// AllFiles flattens every bucket into one candidate pool, ordered by bucket
// path so results are deterministic. Matching deliberately searches the whole
// pool rather than a per-directory scope.
func (ix *Index) AllFiles() []string {
	dirs := make([]string, 0, len(ix.buckets))
	for dir := range ix.buckets {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var files []string
	for _, dir := range dirs {
		files = append(files, ix.buckets[dir]...)
	}
	return files
}

// Len returns the total number of indexed files.
func (ix *Index) Len() int {
	total := 0
	for _, files := range ix.buckets {
		total += len(files)
	}
	return total
}

func normalizeDir(dir string) string {
	return strings.TrimSuffix(filepath.ToSlash(filepath.Clean(dir)), "/")
}
