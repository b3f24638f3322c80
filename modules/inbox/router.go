package inbox

import (
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifyview/pkg/notifications"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

// TargetResolver maps route parameters to a target reference. It is also
// the authorization seam: implementations should verify the requester may
// see the target's notifications and return an error otherwise.
type TargetResolver func(resources, id string) (notifications.TargetRef, error)

// RouterOptions configures the inbox module. Manager and Renderer are
// required; the feed endpoint is mounted only when Feed is provided.
type RouterOptions struct {
	Manager  *notifications.Manager
	Renderer *view.Renderer

	// Feed enables the live notification feed endpoint.
	Feed *notifications.FeedDeliverer

	// Targets resolves route parameters to target references. Default
	// derives the singular kind by trimming a plural "s".
	Targets TargetResolver

	// Layout wraps the index page, resolved from the layouts directory.
	// Empty renders the bare index partial.
	Layout string

	Logger *slog.Logger
}

// Router creates the inbox router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/", inbox.Router(inbox.RouterOptions{
//	    Manager:  manager,
//	    Renderer: renderer,
//	    Feed:     feed,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Manager == nil {
		panic("inbox: Manager is required")
	}
	if opts.Renderer == nil {
		panic("inbox: Renderer is required")
	}
	if opts.Targets == nil {
		opts.Targets = defaultTargetResolver
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &handlers{opts: opts}

	r := chi.NewRouter()
	r.Route("/{resources}/{targetID}/notifications", func(nr chi.Router) {
		nr.Get("/", h.index)
		nr.Post("/open_all", h.openAll)
		if opts.Feed != nil {
			nr.Get("/feed", h.feed)
		}
		nr.Route("/{notificationID}", func(one chi.Router) {
			one.Get("/", h.show)
			one.Get("/move", h.move)
			one.Post("/open", h.open)
		})
	})
	return r
}

func defaultTargetResolver(resources, id string) (notifications.TargetRef, error) {
	return notifications.TargetRef{
		Kind:   strings.TrimSuffix(resources, "s"),
		Plural: resources,
		ID:     id,
	}, nil
}
