package view

import "errors"

var (
	// ErrTemplateNotFound indicates the engine could not resolve a template
	// by name. Engine implementations must wrap this error so the renderer
	// can fall through to the next candidate path.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNoCandidates indicates a render was attempted with an empty
	// candidate path list.
	ErrNoCandidates = errors.New("no template candidates to render")

	// ErrNoSource indicates RenderIndex was called on a renderer that has
	// no notification source configured.
	ErrNoSource = errors.New("notification source not configured")

	// ErrNilEngine indicates a renderer was constructed without an engine.
	ErrNilEngine = errors.New("template engine is required")
)
