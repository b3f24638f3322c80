package view

import (
	"context"
	"html/template"
	"io"
)

// Target identifies the owner of notifications. It supplies both naming
// conventions used to build template and route paths, plus the per-instance
// identifier.
type Target interface {
	// ResourceName returns the singular resource name, e.g. "user".
	ResourceName() string

	// ResourcesName returns the plural resource name, e.g. "users".
	ResourcesName() string

	// ResourceID returns the target instance identifier.
	ResourceID() string
}

// Renderable is a notification that knows how to render itself. The fan-out
// functions only concatenate: each notification delegates its own template
// selection through this interface.
type Renderable interface {
	RenderNotification(ctx context.Context, w io.Writer, r *Renderer, opts Options) error
}

// Source supplies notification sets for index rendering.
type Source interface {
	// Notifications returns the target's plain notification list.
	Notifications(ctx context.Context, target Target) ([]Renderable, error)

	// NotificationIndex returns the target's notification list with each
	// notification pre-annotated with extra index attributes.
	NotificationIndex(ctx context.Context, target Target) ([]Renderable, error)
}

// Engine resolves and executes templates by path. Implementations must wrap
// ErrTemplateNotFound when a name does not resolve so the renderer can fall
// through to the next candidate; any other error aborts the render.
type Engine interface {
	Render(ctx context.Context, w io.Writer, name string, data Data) error
}

// Data is the value handed to every template execution.
type Data struct {
	// Target is the notification owner the render is scoped to.
	Target Target

	// Locals carries caller-supplied values; item fragments additionally
	// receive the notification under "notification".
	Locals map[string]any

	// Slots holds the content regions captured during this render pass.
	// Nil-safe: fragments rendered outside an index pass see empty regions.
	Slots *Slots

	// Content is the wrapped markup when rendering a layout.
	Content template.HTML
}

// Local returns the named local, or nil when absent.
func (d Data) Local(name string) any {
	return d.Locals[name]
}
