package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTarget struct {
	singular, plural, id string
}

func (t testTarget) ResourceName() string  { return t.singular }
func (t testTarget) ResourcesName() string { return t.plural }
func (t testTarget) ResourceID() string    { return t.id }

// mutatingItem writes the "tag" local and then mutates the options it
// received, to prove per-element isolation.
type mutatingItem struct{}

func (m *mutatingItem) RenderNotification(ctx context.Context, w io.Writer, r *Renderer, opts Options) error {
	fmt.Fprintf(w, "[%v]", opts.Locals["tag"])
	opts.Locals["tag"] = "mutated"
	return nil
}

type staticItem string

func (s staticItem) RenderNotification(ctx context.Context, w io.Writer, r *Renderer, opts Options) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type failingItem struct{ err error }

func (f *failingItem) RenderNotification(ctx context.Context, w io.Writer, r *Renderer, opts Options) error {
	return f.err
}

// recordingSource records which selection method was called.
type recordingSource struct {
	items  []Renderable
	err    error
	called string
}

func (s *recordingSource) Notifications(ctx context.Context, target Target) ([]Renderable, error) {
	s.called = "simple"
	return s.items, s.err
}

func (s *recordingSource) NotificationIndex(ctx context.Context, target Target) ([]Renderable, error) {
	s.called = "index"
	return s.items, s.err
}

// stubEngine serves canned responses per template name.
type stubEngine struct {
	templates map[string]string
	errs      map[string]error
	rendered  []string
}

func (e *stubEngine) Render(ctx context.Context, w io.Writer, name string, data Data) error {
	e.rendered = append(e.rendered, name)
	if err, ok := e.errs[name]; ok {
		return err
	}
	body, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	_, err := io.WriteString(w, body)
	return err
}

func userTarget() testTarget {
	return testTarget{singular: "user", plural: "users", id: "42"}
}

func TestRenderer_Notifications(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty sequence renders nothing", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		var buf bytes.Buffer
		err := r.Notifications(ctx, &buf, nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("concatenates fragments in input order", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		var buf bytes.Buffer
		err := r.Notifications(ctx, &buf, []Renderable{
			staticItem("one"), staticItem("two"), staticItem("three"),
		}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "onetwothree", buf.String())
	})

	t.Run("per-element options are isolated", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		opts := Options{Locals: map[string]any{"tag": "original"}}

		var buf bytes.Buffer
		err := r.Notifications(ctx, &buf, []Renderable{
			&mutatingItem{}, &mutatingItem{}, &mutatingItem{},
		}, opts)
		require.NoError(t, err)

		// Every element saw the original local, and the caller's map is
		// untouched.
		assert.Equal(t, "[original][original][original]", buf.String())
		assert.Equal(t, "original", opts.Locals["tag"])
	})

	t.Run("item error stops the fan-out", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		r := New(&stubEngine{})
		var buf bytes.Buffer
		err := r.Notifications(ctx, &buf, []Renderable{
			staticItem("ok"), &failingItem{err: boom}, staticItem("never"),
		}, Options{})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, "ok", buf.String())
	})
}

func TestRenderer_NotificationsHTML(t *testing.T) {
	t.Parallel()

	r := New(&stubEngine{})
	html, err := r.NotificationsHTML(context.Background(), []Renderable{
		staticItem("<b>safe</b>"),
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "<b>safe</b>", string(html))
}

func TestRenderer_Partial_Fallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	target := userTarget()

	t.Run("first candidate wins", func(t *testing.T) {
		t.Parallel()

		engine := &stubEngine{templates: map[string]string{
			"activity_notification/notifications/users/index":   "users index",
			"activity_notification/notifications/default/index": "default index",
		}}
		r := New(engine)

		var buf bytes.Buffer
		err := r.Partial(ctx, &buf, Options{}.PartialCandidates(target), Data{Target: target})
		require.NoError(t, err)
		assert.Equal(t, "users index", buf.String())
	})

	t.Run("missing target template falls back to default root", func(t *testing.T) {
		t.Parallel()

		engine := &stubEngine{templates: map[string]string{
			"activity_notification/notifications/default/index": "default index",
		}}
		r := New(engine)

		var buf bytes.Buffer
		err := r.Partial(ctx, &buf, Options{}.PartialCandidates(target), Data{Target: target})
		require.NoError(t, err)
		assert.Equal(t, "default index", buf.String())
		assert.Equal(t, []string{
			"activity_notification/notifications/users/index",
			"activity_notification/notifications/default/index",
		}, engine.rendered)
	})

	t.Run("exhausted candidates propagate not-found", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		err := r.Partial(ctx, io.Discard, Options{}.PartialCandidates(target), Data{Target: target})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("non-missing error propagates unchanged without fallback", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("template execution failed")
		engine := &stubEngine{
			errs: map[string]error{
				"activity_notification/notifications/users/index": boom,
			},
			templates: map[string]string{
				"activity_notification/notifications/default/index": "default index",
			},
		}
		r := New(engine)

		err := r.Partial(ctx, io.Discard, Options{}.PartialCandidates(target), Data{Target: target})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"activity_notification/notifications/users/index"}, engine.rendered)
	})

	t.Run("failed candidate writes nothing", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		var buf bytes.Buffer
		_ = r.Partial(ctx, &buf, []string{"missing/one", "missing/two"}, Data{})
		assert.Empty(t, buf.String())
	})

	t.Run("empty candidate list", func(t *testing.T) {
		t.Parallel()

		r := New(&stubEngine{})
		err := r.Partial(ctx, io.Discard, nil, Data{})
		require.ErrorIs(t, err, ErrNoCandidates)
	})
}

func TestRenderer_RenderIndex(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	target := userTarget()

	newEngine := func() *stubEngine {
		return &stubEngine{templates: map[string]string{
			"activity_notification/notifications/users/index": "index",
		}}
	}

	t.Run("requires a source", func(t *testing.T) {
		t.Parallel()

		r := New(newEngine())
		err := r.RenderIndex(ctx, io.Discard, target, Options{})
		require.ErrorIs(t, err, ErrNoSource)
	})

	t.Run("default mode selects the annotated index", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{}
		r := New(newEngine(), WithSource(source))
		require.NoError(t, r.RenderIndex(ctx, io.Discard, target, Options{}))
		assert.Equal(t, "index", source.called)
	})

	t.Run("simple mode selects the plain list", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{}
		r := New(newEngine(), WithSource(source))
		require.NoError(t, r.RenderIndex(ctx, io.Discard, target, Options{ContentMode: ContentSimple}))
		assert.Equal(t, "simple", source.called)
	})

	t.Run("unknown mode selects the annotated index", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{}
		r := New(newEngine(), WithSource(source))
		require.NoError(t, r.RenderIndex(ctx, io.Discard, target, Options{ContentMode: "whatever"}))
		assert.Equal(t, "index", source.called)
	})

	t.Run("none mode renders an empty set regardless of source", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{items: []Renderable{staticItem("should not appear")}}

		// The outer partial echoes the captured region.
		htmlFS := fstest.MapFS{
			"activity_notification/notifications/users/index.html": &fstest.MapFile{
				Data: []byte(`<ul>{{ .Slots.Content "notification_index" }}</ul>`),
			},
		}
		r := New(NewHTMLEngine(htmlFS), WithSource(source))

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(ctx, &buf, target, Options{ContentMode: ContentNone}))
		assert.Equal(t, "<ul></ul>", buf.String())
		assert.Empty(t, source.called)
	})

	t.Run("captures items into the index region", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{items: []Renderable{staticItem("a"), staticItem("b")}}
		htmlFS := fstest.MapFS{
			"activity_notification/notifications/users/index.html": &fstest.MapFile{
				Data: []byte(`<ul>{{ .Slots.Content "notification_index" }}</ul>`),
			},
		}
		r := New(NewHTMLEngine(htmlFS), WithSource(source))

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(ctx, &buf, target, Options{}))
		assert.Equal(t, "<ul>ab</ul>", buf.String())
	})

	t.Run("injects target into locals", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{}
		htmlFS := fstest.MapFS{
			"activity_notification/notifications/users/index.html": &fstest.MapFile{
				Data: []byte(`{{ with .Local "target" }}{{ .ResourcesName }}/{{ .ResourceID }}{{ end }}`),
			},
		}
		r := New(NewHTMLEngine(htmlFS), WithSource(source))

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(ctx, &buf, target, Options{}))
		assert.Equal(t, "users/42", buf.String())
	})

	t.Run("wraps in layout when requested", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{items: []Renderable{staticItem("x")}}
		htmlFS := fstest.MapFS{
			"activity_notification/notifications/users/index.html": &fstest.MapFile{
				Data: []byte(`{{ .Slots.Content "notification_index" }}`),
			},
			"layouts/boxed.html": &fstest.MapFile{
				Data: []byte(`<main>{{ .Content }}</main>`),
			},
		}
		r := New(NewHTMLEngine(htmlFS), WithSource(source))

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(ctx, &buf, target, Options{Layout: "boxed"}))
		assert.Equal(t, "<main>x</main>", buf.String())
	})

	t.Run("missing layout propagates", func(t *testing.T) {
		t.Parallel()

		source := &recordingSource{}
		engine := &stubEngine{templates: map[string]string{
			"activity_notification/notifications/users/index": "index",
		}}
		r := New(engine, WithSource(source))

		err := r.RenderIndex(ctx, io.Discard, target, Options{Layout: "nope"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("source error propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("storage down")
		r := New(&stubEngine{}, WithSource(&recordingSource{err: boom}))
		err := r.RenderIndex(ctx, io.Discard, target, Options{})
		require.ErrorIs(t, err, boom)
	})

	t.Run("item render error aborts before the outer partial", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("fragment failed")
		engine := newEngine()
		r := New(engine, WithSource(&recordingSource{items: []Renderable{&failingItem{err: boom}}}))

		err := r.RenderIndex(ctx, io.Discard, target, Options{})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, engine.rendered)
	})
}

func TestRenderer_Component(t *testing.T) {
	t.Parallel()

	r := New(&stubEngine{})
	comp := r.Component([]Renderable{staticItem("hi")}, Options{})

	var buf bytes.Buffer
	require.NoError(t, comp.Render(context.Background(), &buf))
	assert.Equal(t, "hi", buf.String())
}

func TestNew_NilEngine(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New(nil) })
}
