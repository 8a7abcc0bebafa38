package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
)

// Renderer executes pongo2 templates loaded from an fs.FS.
type Renderer struct {
	set *pongo2.TemplateSet
}

// NewRenderer builds a renderer over fsys. Templates are compiled on first
// use and cached.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{set: pongo2.NewSet("site", pongo2.NewFSLoader(fsys))}
}

// Render executes the named template and writes it with status. Output is
// buffered so a template failure still yields a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data pongo2.Context) error {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(data, &buf); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
