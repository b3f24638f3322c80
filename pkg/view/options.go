package view

import "maps"

// Template path conventions. Partials live under a per-target directory with
// a generic "default" sibling used as fallback when a target-specific
// template does not exist.
const (
	// ViewRoot is the base directory for all notification templates.
	ViewRoot = "activity_notification/notifications"

	// DefaultPartial is the partial name used when none is supplied.
	DefaultPartial = "index"

	// DefaultLayoutRoot is the directory layouts are resolved from.
	DefaultLayoutRoot = "layouts"
)

// ContentMode selects which notification set RenderIndex renders.
type ContentMode string

const (
	// ContentWithAttributes renders the annotated index (default): each
	// notification's Data carries extra index attributes supplied by the
	// Source.
	ContentWithAttributes ContentMode = ""

	// ContentSimple renders the target's plain notification list.
	ContentSimple ContentMode = "simple"

	// ContentNone renders an always-empty notification set.
	ContentNone ContentMode = "none"
)

// Options control template resolution for a single render call. The zero
// value renders the conventional index partial without a layout.
//
// Options are consumed per call and never retained: every notification in a
// batch receives its own shallow copy (with Locals cloned), so one
// notification's render cannot leak option mutations to its siblings.
type Options struct {
	// Partial is the partial template name, "index" when empty.
	Partial string

	// PartialRoot overrides the directory the partial is resolved from.
	// Empty means the target-scoped convention
	// "activity_notification/notifications/<resources>".
	PartialRoot string

	// Layout is the layout template name. Empty means no layout, and no
	// layout path is computed.
	Layout string

	// LayoutRoot is the directory layouts are resolved from, "layouts"
	// when empty.
	LayoutRoot string

	// FallbackRoot overrides the directory tried when the target-scoped
	// partial is missing. Empty means
	// "activity_notification/notifications/default".
	FallbackRoot string

	// ContentMode selects the notification set for RenderIndex.
	ContentMode ContentMode

	// Locals are merged into the data passed to the partial. RenderIndex
	// always injects the target under the "target" key.
	Locals map[string]any
}

// clone returns an independently mutable copy of the options.
func (o Options) clone() Options {
	o.Locals = maps.Clone(o.Locals)
	return o
}

func (o Options) partialName() string {
	if o.Partial == "" {
		return DefaultPartial
	}
	return o.Partial
}

func (o Options) partialRoot(target Target) string {
	if o.PartialRoot != "" {
		return o.PartialRoot
	}
	return joinPath(ViewRoot, target.ResourcesName())
}

func (o Options) fallbackRoot() string {
	if o.FallbackRoot != "" {
		return o.FallbackRoot
	}
	return joinPath(ViewRoot, "default")
}

// PartialCandidates returns the ordered template paths tried for the outer
// partial: the target-scoped root first, then the default root. Duplicate
// paths are collapsed so an explicit default root is not tried twice.
func (o Options) PartialCandidates(target Target) []string {
	primary := joinPath(o.partialRoot(target), o.partialName())
	fallback := joinPath(o.fallbackRoot(), o.partialName())
	if primary == fallback {
		return []string{primary}
	}
	return []string{primary, fallback}
}

// LayoutPath returns the resolved layout path, or "" when no layout name
// was supplied.
func (o Options) LayoutPath() string {
	if o.Layout == "" {
		return ""
	}
	root := o.LayoutRoot
	if root == "" {
		root = DefaultLayoutRoot
	}
	return joinPath(root, o.Layout)
}

// ItemCandidates returns the ordered template paths for a single
// notification fragment: the target-scoped fragment first, then the generic
// default fragment with the target hint stripped.
func ItemCandidates(target Target, name string) []string {
	if name == "" {
		name = "default"
	}
	return []string{
		joinPath(joinPath(ViewRoot, target.ResourcesName()), "_"+name),
		joinPath(joinPath(ViewRoot, "default"), "_"+name),
	}
}

func joinPath(root, name string) string {
	return root + "/" + name
}
