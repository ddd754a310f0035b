// Package files locates CEAB workbook files on disk for batch loading.
package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

// Discovery provides workbook discovery under a root directory.
type Discovery struct {
	root string
}

// NewDiscovery creates a new file discovery instance rooted at root.
func NewDiscovery(root string) *Discovery {
	return &Discovery{root: root}
}

// Root returns the discovery root directory.
func (d *Discovery) Root() string {
	return d.root
}

// FindWorkbooks walks the root and returns the path of every regular file
// whose path relative to the root matches the pattern. Paths are returned in
// the deterministic lexical order of the walk; matching is case-sensitive on
// the forward-slash form of the relative path.
func (d *Discovery) FindWorkbooks(pattern *regexp.Regexp) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		if pattern.MatchString(filepath.ToSlash(rel)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", d.root, err)
	}
	return paths, nil
}

// FindExcelFiles returns every .xlsx file directly under dir relative to the
// root, in lexical order. Useful for listing candidate sources without a
// pattern.
func (d *Discovery) FindExcelFiles(dir string) ([]string, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.root, dir)
	}

	entries, err := filepath.Glob(filepath.Join(fullPath, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if strings.HasSuffix(strings.ToLower(entry), ".xlsx") {
			paths = append(paths, entry)
		}
	}
	return paths, nil
}
