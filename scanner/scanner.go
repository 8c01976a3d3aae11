// Package scanner parses batches of USFM files, either synchronously
// through a worker pool or as background scans tracked by ID.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/usfm/parser"
)

var log = commonlog.GetLogger("usfm.scanner")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string
	Files     []string
	CreatedAt time.Time
}

// FileResult is one parsed file. Source is retained because the document's
// elements are views into it.
type FileResult struct {
	Path        string
	Source      []byte
	Document    *parser.Document
	Diagnostics []parser.Diagnostic
	Err         string
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Files     []FileResult
	Error     string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// DiagnosticCount sums diagnostics over all files in the scan.
func (r *Result) DiagnosticCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Extensions recognized as USFM input.
var usfmExtensions = map[string]bool{
	".usfm": true,
	".sfm":  true,
	".ptx":  true,
}

// IsUSFM reports whether a path carries one of the recognized extensions.
func IsUSFM(path string) bool {
	return usfmExtensions[filepath.Ext(path)]
}

// Discover walks a directory tree and returns every USFM file in it, in
// walk order.
func Discover(path string) ([]string, error) {
	var files []string
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && usfmExtensions[filepath.Ext(p)] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	return files, nil
}

// ScanFile reads and parses one file. Parse diagnostics are not errors; Err
// is set only when the file cannot be read.
func ScanFile(path string) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Sprintf("read %s: %v", path, err)}
	}
	p := parser.NewParser(data)
	doc := p.Document()
	return FileResult{
		Path:        path,
		Source:      data,
		Document:    doc,
		Diagnostics: p.Errors().All(),
	}
}

// ScanFiles parses files on a fixed pool of workers. Results come back in
// input order regardless of which worker finished first.
func ScanFiles(files []string, workers int) []FileResult {
	return scanFiles(files, workers, nil)
}

func scanFiles(files []string, workers int, onProgress func()) []FileResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = ScanFile(files[i])
				if onProgress != nil {
					onProgress()
				}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// Scanner tracks background scans by ID, for callers that poll for results
// instead of blocking.
type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	workers  int
	nextID   int
}

func New(workers int) *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
		workers:  workers,
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

func (s *Scanner) processScan(req Request) {
	files := req.Files
	var walkErr error
	if req.Path != "" {
		files, walkErr = Discover(req.Path)
	}

	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	result.Total = len(files)
	s.mu.Unlock()

	if walkErr != nil {
		s.mu.Lock()
		result.Status = StatusFailed
		result.Error = walkErr.Error()
		result.EndedAt = time.Now()
		s.mu.Unlock()
		return
	}

	fileResults := scanFiles(files, s.workers, func() {
		s.mu.Lock()
		result.Progress++
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Files = fileResults
	result.Status = StatusCompleted
	for _, f := range fileResults {
		if f.Err != "" {
			result.Error = f.Err
			break
		}
	}
	log.Infof("scan %s: %d files, %d diagnostics", req.ID, len(fileResults), result.DiagnosticCount())
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	s.requests <- req
	return req.ID
}

func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	return result, ok
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		results = append(results, r)
	}
	return results
}
