package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/usfm/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWorkspaceUpdateFile(t *testing.T) {
	w := New(t.TempDir())

	info := w.UpdateFile("mat.usfm", []byte("\\id MAT\n\\c 1\n\\p\n\\v 1 text\n"))
	if len(info.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", info.Diagnostics)
	}
	if info.Document.Root.FirstChildOfKind(parser.TagC) == nil {
		t.Error("document is missing its chapter marker")
	}

	if got := w.GetFile("mat.usfm"); got != info {
		t.Error("GetFile did not return the updated state")
	}

	// a broken edit replaces the clean state
	info = w.UpdateFile("mat.usfm", []byte("\\p \\nonsense\n"))
	if len(info.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one invalid marker", info.Diagnostics)
	}
	if w.DiagnosticCount() != 1 {
		t.Errorf("DiagnosticCount = %d, want 1", w.DiagnosticCount())
	}
}

func TestWorkspaceScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01.usfm", "\\id GEN\n")
	writeFile(t, dir, "02.usfm", "\\id EXO\n")
	writeFile(t, dir, "readme.md", "not scanned")

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	files := w.Files()
	if len(files) != 2 {
		t.Fatalf("tracking %d files, want 2: %v", len(files), files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Errorf("Files not sorted: %v", files)
		}
	}
}

func TestWorkspaceRemoveFile(t *testing.T) {
	w := New(t.TempDir())
	w.UpdateFile("a.usfm", []byte("\\id GEN\n"))
	w.RemoveFile("a.usfm")
	if w.GetFile("a.usfm") != nil {
		t.Error("file still tracked after removal")
	}
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "01.usfm", "\\id GEN\n")

	w := New(dir)
	watcher := NewFileWatcher(w)

	watcher.scan()
	if w.GetFile(path) == nil {
		t.Fatal("watcher did not pick up the file")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	watcher.scan()
	if w.GetFile(path) != nil {
		t.Error("watcher did not drop the deleted file")
	}
}

func TestTokenRange(t *testing.T) {
	src := []byte("\\p first\n\\q second")
	r := tokenRange(src, parser.Token{Start: 9, End: 11})
	if r.Start.Line != 1 || r.Start.Character != 0 {
		t.Errorf("start = %+v, want line 1 char 0", r.Start)
	}
	if r.End.Line != 1 || r.End.Character != 2 {
		t.Errorf("end = %+v, want line 1 char 2", r.End)
	}
}

func TestToProtocolDiagnostic(t *testing.T) {
	src := []byte("\\p \\w word")
	p := parser.NewParser(src)
	p.Document()
	diags := p.Errors().All()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}

	diag := toProtocolDiagnostic(pathToURI("/tmp/a.usfm"), src, diags[0])
	if diag.Message != "expected closing marker" {
		t.Errorf("message = %q", diag.Message)
	}
	if len(diag.RelatedInformation) != 1 {
		t.Fatalf("expected a related location for the opening marker")
	}
	opening := diag.RelatedInformation[0].Location.Range
	if opening.Start.Character != 3 || opening.End.Character != 5 {
		t.Errorf("opening range = %+v, want characters 3..5", opening)
	}
}
