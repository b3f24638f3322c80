package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

// HTMLEngine is an Engine backed by html/template over an fs.FS. Template
// names map to files by appending the configured extension, so the engine
// works identically over embedded and on-disk template trees.
//
// Parsed templates are cached for the lifetime of the engine; the backing
// filesystem is assumed immutable once the engine is in use.
type HTMLEngine struct {
	fsys  fs.FS
	ext   string
	funcs template.FuncMap

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// HTMLEngineOption configures an HTMLEngine.
type HTMLEngineOption func(*HTMLEngine)

// WithExtension sets the file extension appended to template names.
// Default is ".html".
func WithExtension(ext string) HTMLEngineOption {
	return func(e *HTMLEngine) {
		if ext != "" {
			e.ext = ext
		}
	}
}

// WithFuncs adds functions available to all templates.
func WithFuncs(funcs template.FuncMap) HTMLEngineOption {
	return func(e *HTMLEngine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// NewHTMLEngine creates an html/template engine over the given filesystem.
func NewHTMLEngine(fsys fs.FS, opts ...HTMLEngineOption) *HTMLEngine {
	e := &HTMLEngine{
		fsys:  fsys,
		ext:   ".html",
		funcs: template.FuncMap{},
		cache: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render executes the named template with the given data. A name that does
// not resolve to a file reports ErrTemplateNotFound.
func (e *HTMLEngine) Render(ctx context.Context, w io.Writer, name string, data Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tpl, err := e.lookup(name)
	if err != nil {
		return err
	}
	return tpl.Execute(w, data)
}

func (e *HTMLEngine) lookup(name string) (*template.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	raw, err := fs.ReadFile(e.fsys, name+e.ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	tpl, err = template.New(name).Funcs(e.funcs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	e.mu.Lock()
	e.cache[name] = tpl
	e.mu.Unlock()

	return tpl, nil
}
