// Package notifyview is a notification view toolkit for server-rendered Go
// web applications.
//
// It resolves which partial template and layout to render for a target's
// notifications, builds per-target notification action paths and URLs
// through an explicit route registry, and ships the surrounding machinery a
// notification feature needs: a target-keyed domain model with pluggable
// storage (memory, Postgres, Redis, Mongo), delivery channels (in-process
// feed, email), and a chi-based HTTP module with a datastar live feed.
//
// The root package re-exports the view and routing entry points; supporting
// packages live under pkg/ and modules/.
//
// Quick start:
//
//	storage := notifications.NewMemoryStorage()
//	feed := notifications.NewFeedDeliverer(64)
//	manager := notifications.NewManager(storage, feed)
//
//	renderer := notifyview.NewRenderer(
//		notifyview.NewHTMLEngine(inbox.Templates()),
//		notifyview.WithSource(manager),
//	)
//
//	reg := notifyview.NewRegistry()
//	reg.MustRegister("user", routes.Conventional{})
//
//	r := chi.NewRouter()
//	r.Mount("/", inbox.Router(inbox.RouterOptions{
//		Manager:  manager,
//		Renderer: renderer,
//		Feed:     feed,
//	}))
package notifyview
