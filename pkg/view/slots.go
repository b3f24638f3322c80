package view

import (
	"bytes"
	"html/template"
	"io"
)

// SlotNotificationIndex is the content region the notification index is
// captured into during RenderIndex.
const SlotNotificationIndex = "notification_index"

// Slots is a named content-region map for a single render pass. The inner
// render step writes regions, the outer template reads them back; ownership
// is one Slots instance per pass. Repeated captures into the same region
// append, matching content-region semantics.
//
// Slots is not safe for concurrent use. A render pass is single-threaded,
// so no locking is needed.
type Slots struct {
	regions map[string]template.HTML
}

// NewSlots creates an empty slot map for one render pass.
func NewSlots() *Slots {
	return &Slots{regions: make(map[string]template.HTML)}
}

// Set appends pre-escaped markup to the named region.
func (s *Slots) Set(name string, html template.HTML) {
	if s.regions == nil {
		s.regions = make(map[string]template.HTML)
	}
	s.regions[name] += html
}

// Capture runs fn against a buffer and appends whatever it wrote to the
// named region. Nothing is stored when fn fails.
func (s *Slots) Capture(name string, fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	s.Set(name, template.HTML(buf.String()))
	return nil
}

// Content returns the markup captured into the named region, or "" when the
// region was never written. Safe to call on a nil Slots so templates can
// reference regions unconditionally.
func (s *Slots) Content(name string) template.HTML {
	if s == nil {
		return ""
	}
	return s.regions[name]
}

// Has reports whether the named region holds any content.
func (s *Slots) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.regions[name]
	return ok
}
