package notifyview

import (
	"io/fs"

	"github.com/dmitrymomot/notifyview/pkg/routes"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

// Re-exported view types so common wiring needs a single import.
type (
	// Renderer renders notification partials and index views.
	Renderer = view.Renderer

	// Options control template resolution for a single render call.
	Options = view.Options

	// ContentMode selects which notification set RenderIndex renders.
	ContentMode = view.ContentMode

	// HTMLEngine is the html/template Engine over an fs.FS.
	HTMLEngine = view.HTMLEngine

	// Registry resolves per-target route sets.
	Registry = routes.Registry
)

// Content mode aliases.
const (
	ContentWithAttributes = view.ContentWithAttributes
	ContentSimple         = view.ContentSimple
	ContentNone           = view.ContentNone
)

// NewRenderer creates a renderer over the given engine.
func NewRenderer(engine view.Engine, opts ...view.Option) *view.Renderer {
	return view.New(engine, opts...)
}

// WithSource sets the notification source used for index rendering.
func WithSource(s view.Source) view.Option {
	return view.WithSource(s)
}

// NewHTMLEngine creates an html/template engine over the given filesystem.
func NewHTMLEngine(fsys fs.FS, opts ...view.HTMLEngineOption) *view.HTMLEngine {
	return view.NewHTMLEngine(fsys, opts...)
}

// NewRegistry creates an empty route registry.
func NewRegistry(opts ...routes.RegistryOption) *routes.Registry {
	return routes.New(opts...)
}
