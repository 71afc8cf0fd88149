// Package filesystem provides the file system access used by discovery and
// the root confinement used by the MCP server.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindFile
	KindDirectory
)

// KindOf classifies a stat result. Symlinks have already been followed by Stat.
func KindOf(info fs.FileInfo) Kind {
	switch {
	case info.IsDir():
		return KindDirectory
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry is a single item of a directory listing.
type Entry struct {
	Name string
	Path string
}

// FS is the file system surface discovery needs.
type FS interface {
	// Stat follows symlinks.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists a directory in name order.
	ReadDir(path string) ([]Entry, error)
	// Exists reports whether path is still present. A missing path is not an error.
	Exists(path string) (bool, error)
	// RealPath resolves every symlink in path.
	RealPath(path string) (string, error)
}

// OS implements FS on top of the os package.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OS) ReadDir(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, Entry{
			Name: e.Name(),
			Path: filepath.Join(path, e.Name()),
		})
	}
	return entries, nil
}

func (OS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (OS) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Within reports whether path is root or lies below it. Both are compared
// lexically, so callers resolve symlinks first when that matters.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Service confines paths to a root directory.
type Service struct {
	rootPath string
	realRoot string
}

// New creates a new Service rooted at rootPath.
func New(rootPath string) (*Service, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", rootPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("root not found: %s", rootPath)
		}
		return nil, fmt.Errorf("failed to stat root: %s - %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", rootPath)
	}

	realRoot, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %s - %w", rootPath, err)
	}

	return &Service{rootPath: absPath, realRoot: realRoot}, nil
}

// ResolvePath resolves a relative path within the root and validates it.
// A path whose symlinks lead outside the root is rejected as well. A path
// that does not exist yet is only checked lexically.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	absPath, err := filepath.Abs(filepath.Join(s.rootPath, relativePath))
	if err != nil {
		return "", err
	}
	if !Within(s.rootPath, absPath) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to resolve path: %s - %w", relativePath, err)
	}
	if !Within(s.realRoot, realPath) {
		return "", fmt.Errorf("path escapes root through a symlink: %s", relativePath)
	}

	return absPath, nil
}

// Rel maps an absolute path under the root to a slash separated relative path.
func (s *Service) Rel(absPath string) string {
	rel, err := filepath.Rel(s.rootPath, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

// RootPath returns the absolute root path.
func (s *Service) RootPath() string {
	return s.rootPath
}
