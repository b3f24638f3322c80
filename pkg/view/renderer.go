package view

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"maps"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/notifyview/pkg/logger"
)

// Renderer resolves notification templates and renders them through an
// Engine. It is stateless across calls and safe for concurrent use as long
// as the underlying engine is.
type Renderer struct {
	engine Engine
	source Source
	log    *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSource sets the notification source used by RenderIndex.
func WithSource(s Source) Option {
	return func(r *Renderer) {
		r.source = s
	}
}

// WithLogger sets the logger for the Renderer.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a renderer over the given engine. It panics on a nil engine:
// a renderer without an engine cannot do anything, and misconfiguration
// should prevent startup rather than surface per request.
func New(engine Engine, opts ...Option) *Renderer {
	if engine == nil {
		panic(ErrNilEngine)
	}
	r := &Renderer{
		engine: engine,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notification renders a single notification. The notification delegates its
// own template selection; the options are cloned so the call cannot mutate
// the caller's copy.
func (r *Renderer) Notification(ctx context.Context, w io.Writer, item Renderable, opts Options) error {
	return item.RenderNotification(ctx, w, r, opts.clone())
}

// Notifications renders a sequence of notifications, concatenating the
// fragments in input order. An empty sequence writes nothing and returns
// nil. Every element receives an independent copy of the options.
func (r *Renderer) Notifications(ctx context.Context, w io.Writer, items []Renderable, opts Options) error {
	for _, item := range items {
		if err := r.Notification(ctx, w, item, opts); err != nil {
			return err
		}
	}
	return nil
}

// NotificationsHTML renders a sequence of notifications and returns the
// concatenated markup as pre-escaped HTML.
func (r *Renderer) NotificationsHTML(ctx context.Context, items []Renderable, opts Options) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Notifications(ctx, &buf, items, opts); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Partial renders the first candidate template that resolves. Candidates are
// tried in order; only ErrTemplateNotFound advances to the next one, any
// other error propagates unchanged. When every candidate is missing, the
// last not-found error propagates. Output is buffered so a failing
// candidate never writes partial markup.
func (r *Renderer) Partial(ctx context.Context, w io.Writer, candidates []string, data Data) error {
	if len(candidates) == 0 {
		return ErrNoCandidates
	}

	var err error
	for _, name := range candidates {
		var buf bytes.Buffer
		err = r.engine.Render(ctx, &buf, name, data)
		if err == nil {
			_, werr := w.Write(buf.Bytes())
			return werr
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return err
		}
		r.log.LogAttrs(ctx, slog.LevelDebug, "Template not found, trying next candidate",
			logger.Template(name),
		)
	}
	return err
}

// RenderIndex renders the target's notification index. The notification set
// selected by opts.ContentMode is rendered first and captured into the
// "notification_index" content region of a fresh per-pass slot map; the
// outer index partial is then resolved through the candidate list (target
// root, then default root) with the target injected into locals, and wrapped
// in the layout when one was requested.
func (r *Renderer) RenderIndex(ctx context.Context, w io.Writer, target Target, opts Options) error {
	if r.source == nil {
		return ErrNoSource
	}

	items, err := r.indexItems(ctx, target, opts.ContentMode)
	if err != nil {
		return err
	}

	slots := NewSlots()
	if err := slots.Capture(SlotNotificationIndex, func(sw io.Writer) error {
		return r.Notifications(ctx, sw, items, opts)
	}); err != nil {
		return err
	}

	locals := maps.Clone(opts.Locals)
	if locals == nil {
		locals = make(map[string]any, 1)
	}
	locals["target"] = target

	data := Data{
		Target: target,
		Locals: locals,
		Slots:  slots,
	}

	var buf bytes.Buffer
	if err := r.Partial(ctx, &buf, opts.PartialCandidates(target), data); err != nil {
		return err
	}

	if layout := opts.LayoutPath(); layout != "" {
		data.Content = template.HTML(buf.String())
		return r.Partial(ctx, w, []string{layout}, data)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func (r *Renderer) indexItems(ctx context.Context, target Target, mode ContentMode) ([]Renderable, error) {
	switch mode {
	case ContentNone:
		return nil, nil
	case ContentSimple:
		return r.source.Notifications(ctx, target)
	default:
		return r.source.NotificationIndex(ctx, target)
	}
}

// Component wraps a notification sequence as a templ component so rendered
// lists plug into templ and datastar pipelines.
func (r *Renderer) Component(items []Renderable, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.Notifications(ctx, w, items, opts)
	})
}

// IndexComponent wraps RenderIndex as a templ component.
func (r *Renderer) IndexComponent(target Target, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.RenderIndex(ctx, w, target, opts)
	})
}
