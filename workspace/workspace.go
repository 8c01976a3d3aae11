// Package workspace keeps the parsed state of a directory of USFM files
// current, for editor integration.
package workspace

import (
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/usfm/parser"
	"github.com/dhamidi/usfm/scanner"
)

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is the parsed state of one file. Content is retained because the
// document's elements are views into it.
type FileInfo struct {
	Path        string
	Content     []byte
	Document    *parser.Document
	Diagnostics []parser.Diagnostic
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every USFM file under the workspace root. Unreadable files
// are skipped; editing sessions survive files appearing and vanishing.
func (w *Workspace) ScanAll() error {
	files, err := scanner.Discover(w.rootDir)
	if err != nil {
		return err
	}
	for _, path := range files {
		w.ScanFile(path)
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces a file's content and reparses it, returning the new
// state.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	p := parser.NewParser(content)
	info := &FileInfo{
		Path:        path,
		Content:     content,
		Document:    p.Document(),
		Diagnostics: p.Errors().All(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns the tracked paths in sorted order.
func (w *Workspace) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// DiagnosticCount sums diagnostics over every tracked file.
func (w *Workspace) DiagnosticCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, f := range w.files {
		n += len(f.Diagnostics)
	}
	return n
}
