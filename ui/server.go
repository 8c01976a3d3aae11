// Package ui serves a browser preview of a workspace: a file index and
// rendered HTML per file, with parse diagnostics listed alongside.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dhamidi/usfm/format"
	"github.com/dhamidi/usfm/parser"
	"github.com/dhamidi/usfm/workspace"
)

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	workspace  *workspace.Workspace
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(ws *workspace.Workspace) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		workspace:  ws,
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /f/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render parses the templates per request so edits to ui/templates show up
// without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

type fileEntry struct {
	Path        string
	Diagnostics int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var entries []fileEntry
	for _, path := range s.workspace.Files() {
		info := s.workspace.GetFile(path)
		if info == nil {
			continue
		}
		entries = append(entries, fileEntry{
			Path:        s.relPath(path),
			Diagnostics: len(info.Diagnostics),
		})
	}

	data := struct {
		Root  string
		Files []fileEntry
	}{
		Root:  s.workspace.RootDir(),
		Files: entries,
	}
	s.render(w, "index.html", data)
}

type diagnosticView struct {
	Line    int
	Column  int
	Message string
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.workspace.RootDir(), r.PathValue("path"))
	info := s.workspace.GetFile(path)
	if info == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(info.Document)
		return
	}

	enc := format.NewHTMLEncoder(nil)
	body, err := enc.MarshalText(info.Document)
	if err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var diagnostics []diagnosticView
	for _, d := range info.Diagnostics {
		pos := parser.PositionOf(info.Content, d.Token.Start)
		diagnostics = append(diagnostics, diagnosticView{
			Line:    pos.Line,
			Column:  pos.Column,
			Message: d.Message(info.Content),
		})
	}

	data := struct {
		Path        string
		Body        template.HTML
		Diagnostics []diagnosticView
	}{
		Path:        s.relPath(path),
		Body:        template.HTML(body),
		Diagnostics: diagnostics,
	}
	s.render(w, "file.html", data)
}

func (s *Server) relPath(path string) string {
	if rel, err := filepath.Rel(s.workspace.RootDir(), path); err == nil {
		return rel
	}
	return path
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS prefers files on disk over the embedded copies, so local edits
// take effect during development.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
