package inbox

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifyview/pkg/logger"
	"github.com/dmitrymomot/notifyview/pkg/notifications"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

type handlers struct {
	opts RouterOptions
}

func (h *handlers) target(r *http.Request) (notifications.TargetRef, error) {
	return h.opts.Targets(chi.URLParam(r, "resources"), chi.URLParam(r, "targetID"))
}

// index renders the target's notification index page.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	opts := view.Options{
		Layout:      h.opts.Layout,
		ContentMode: view.ContentMode(r.URL.Query().Get("index_content")),
	}

	// Render into a buffer so a failing template never sends a half page.
	var buf bytes.Buffer
	if err := h.opts.Renderer.RenderIndex(r.Context(), &buf, target, opts); err != nil {
		h.renderError(w, r, target, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// show renders a single notification fragment.
func (h *handlers) show(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	notif, err := h.opts.Manager.Get(r.Context(), target, chi.URLParam(r, "notificationID"))
	if err != nil {
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, r, target, err)
		return
	}

	var buf bytes.Buffer
	if err := h.opts.Renderer.Notification(r.Context(), &buf, notif, view.Options{}); err != nil {
		h.renderError(w, r, target, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// open marks the notification as read, then redirects to its notifiable
// path, falling back to the index.
func (h *handlers) open(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	path, err := h.opts.Manager.Open(r.Context(), target, chi.URLParam(r, "notificationID"))
	if err != nil {
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, r, target, err)
		return
	}

	h.redirect(w, r, path, target)
}

// move redirects to the notifiable path without marking the notification
// as read.
func (h *handlers) move(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	notif, err := h.opts.Manager.Get(r.Context(), target, chi.URLParam(r, "notificationID"))
	if err != nil {
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, r, target, err)
		return
	}

	h.redirect(w, r, notif.NotifiablePath, target)
}

// openAll marks every unread notification of the target as read and
// redirects back to the caller.
func (h *handlers) openAll(w http.ResponseWriter, r *http.Request) {
	target, err := h.target(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	count, err := h.opts.Manager.OpenAll(r.Context(), target)
	if err != nil {
		h.renderError(w, r, target, err)
		return
	}

	h.opts.Logger.LogAttrs(r.Context(), slog.LevelDebug, "Opened all notifications",
		logger.TargetKey(target.Key()),
		logger.Count(count),
	)

	h.redirect(w, r, refererPath(r), target)
}

// refererPath reduces the request's Referer to a local redirect path.
// Cross-origin and malformed referers yield "" so redirect falls back to
// the target's index instead of sending the caller off-site.
func refererPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil {
		return ""
	}
	if ref.Host != "" && ref.Host != r.Host {
		return ""
	}
	// Scheme-relative ("//evil.com") and non-rooted paths are rejected.
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return ""
	}
	path := ref.Path
	if ref.RawQuery != "" {
		path += "?" + ref.RawQuery
	}
	return path
}

// redirect sends the caller to path, falling back to the target's index
// when no destination is known.
func (h *handlers) redirect(w http.ResponseWriter, r *http.Request, path string, target notifications.TargetRef) {
	if path == "" {
		path = "/" + target.ResourcesName() + "/" + target.ID + "/notifications"
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (h *handlers) renderError(w http.ResponseWriter, r *http.Request, target notifications.TargetRef, err error) {
	h.opts.Logger.LogAttrs(r.Context(), slog.LevelError, "Inbox request failed",
		logger.TargetKey(target.Key()),
		logger.Route(r.URL.Path),
		logger.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
