package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taigrr/repofind/internal/filesystem"
)

// recordingFS wraps the OS file system, records every path it is asked about
// and lets tests inject failures.
type recordingFS struct {
	filesystem.OS

	mu      sync.Mutex
	visited []string

	statErr    map[string]error
	readDirErr map[string]error
	vanished   map[string]bool
}

func newRecordingFS() *recordingFS {
	return &recordingFS{
		statErr:    map[string]error{},
		readDirErr: map[string]error{},
		vanished:   map[string]bool{},
	}
}

func (r *recordingFS) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visited = append(r.visited, path)
}

func (r *recordingFS) Stat(path string) (fs.FileInfo, error) {
	r.record(path)
	if err, ok := r.statErr[path]; ok {
		return nil, err
	}
	return r.OS.Stat(path)
}

func (r *recordingFS) ReadDir(path string) ([]filesystem.Entry, error) {
	r.record(path)
	if err, ok := r.readDirErr[path]; ok {
		return nil, err
	}
	return r.OS.ReadDir(path)
}

func (r *recordingFS) Exists(path string) (bool, error) {
	r.record(path)
	if r.vanished[path] {
		return false, nil
	}
	return r.OS.Exists(path)
}

func (r *recordingFS) touched(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.visited {
		if strings.Contains(filepath.ToSlash(p), substr) {
			return true
		}
	}
	return false
}

// writeTree creates files (and their parent directories) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}
