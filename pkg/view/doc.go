// Package view renders notification partials and index views for
// server-rendered web applications.
//
// The package resolves which partial template and optional layout to use for
// a notification target by path convention, renders one or many notifications
// with per-call option isolation, and renders a target's notification index
// into a named content region. Template resolution is an explicit ordered
// candidate list: a target-scoped path is tried first, then the generic
// default path, so applications only provide templates for the targets that
// need custom markup.
//
// Basic usage:
//
//	engine := view.NewHTMLEngine(templatesFS)
//	renderer := view.New(engine, view.WithSource(manager))
//
//	var buf bytes.Buffer
//	err := renderer.RenderIndex(ctx, &buf, target, view.Options{
//		Layout: "notifications",
//	})
//
// The renderer is template-engine agnostic: anything implementing Engine can
// back it. NewHTMLEngine provides an html/template implementation over an
// fs.FS, which covers embedded and on-disk template trees.
package view
