package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modelexport/pkg/types"
)

// IsCandidate reports whether name ends with one of the recognized model suffixes.
// The match is case-sensitive: "x.CKPT" is not a candidate.
func IsCandidate(name string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// CategoryDir returns <root>/<subdirectory(c)>.
func CategoryDir(root string, c types.Category) string {
	return filepath.Join(root, Subdirectory(c))
}

// SourcePath returns the on-disk location of name within category c under root.
func SourcePath(root string, c types.Category, name string) string {
	return filepath.Join(root, Subdirectory(c), name)
}

// ListCandidateFiles lists model files directly under <root>/<subdirectory(c)>.
// An empty root or a missing category directory yields an empty list and no error.
// Names are returned in the order the directory read reports them.
func ListCandidateFiles(root string, c types.Category) ([]types.ModelFile, error) {
	if root == "" {
		return []types.ModelFile{}, nil
	}
	dir := CategoryDir(root, c)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []types.ModelFile{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	files := make([]types.ModelFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isLinkToDir(dir, e) {
			continue
		}
		name := e.Name()
		if !IsCandidate(name) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

// isLinkToDir reports whether e is a symlink whose target is a directory.
// Dangling links are kept; export reports them as missing sources.
func isLinkToDir(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.IsDir()
}
