package inbox

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/notifyview/pkg/logger"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

// feed streams the target's new notifications over SSE as datastar element
// patches, prepending each rendered fragment into the index region. The
// subscription lives for the duration of the request.
func (h *handlers) feed(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ch, cancel := h.opts.Feed.Subscribe(target)
	defer cancel()

	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case notif, ok := <-ch:
			if !ok {
				return
			}

			html, err := h.opts.Renderer.NotificationsHTML(ctx, []view.Renderable{&notif}, view.Options{})
			if err != nil {
				h.opts.Logger.LogAttrs(ctx, slog.LevelError, "Failed to render feed notification",
					logger.NotificationID(notif.ID),
					logger.TargetKey(target.Key()),
					logger.Error(err),
				)
				continue
			}

			if err := sse.PatchElementTempl(templ.Raw(string(html)),
				datastar.WithSelector("#"+view.SlotNotificationIndex),
				datastar.WithMode(datastar.ElementPatchModePrepend),
			); err != nil {
				// Client went away mid-write.
				return
			}
		}
	}
}
