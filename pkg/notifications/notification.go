package notifications

import (
	"context"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/dmitrymomot/notifyview/pkg/routes"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

// Type represents the notification type/severity.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Priority represents the notification priority level.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// Action represents a call-to-action button in a notification.
type Action struct {
	Label string `json:"label" bson:"label"`
	URL   string `json:"url" bson:"url"`
	Style string `json:"style" bson:"style"` // primary, secondary, danger
}

// Notification is the core domain model for notifications. The bson tags
// pin the document field names the Mongo backend filters and sorts on.
type Notification struct {
	ID             string         `json:"id" bson:"id"`
	Target         TargetRef      `json:"target" bson:"target"`
	Key            string         `json:"key,omitempty" bson:"key,omitempty"` // event key, e.g. "comment.posted"
	Type           Type           `json:"type" bson:"type"`
	Priority       Priority       `json:"priority" bson:"priority"`
	Title          string         `json:"title" bson:"title"`
	Message        string         `json:"message" bson:"message"`
	Data           map[string]any `json:"data,omitempty" bson:"data,omitempty"`       // Custom payload
	Actions        []Action       `json:"actions,omitempty" bson:"actions,omitempty"` // CTAs
	NotifiablePath string         `json:"notifiable_path,omitempty" bson:"notifiable_path,omitempty"`
	Read           bool           `json:"read" bson:"read"`
	ReadAt         *time.Time     `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*n.ExpiresAt)
}

// MarkAsRead marks the notification as read with the current timestamp.
func (n *Notification) MarkAsRead() {
	n.Read = true
	now := time.Now()
	n.ReadAt = &now
}

// TemplateName returns the fragment template name derived from the event
// key: dots become underscores, so "comment.posted" resolves the fragment
// "_comment_posted". Notifications without a key use "default".
func (n *Notification) TemplateName() string {
	if n.Key == "" {
		return "default"
	}
	return strings.ReplaceAll(n.Key, ".", "_")
}

// RenderNotification renders the notification's own fragment through the
// given renderer. Template selection belongs to the notification: the
// target-scoped fragment is tried first, then the generic default fragment.
func (n *Notification) RenderNotification(ctx context.Context, w io.Writer, r *view.Renderer, opts view.Options) error {
	locals := maps.Clone(opts.Locals)
	if locals == nil {
		locals = make(map[string]any, 2)
	}
	locals["notification"] = n
	locals["target"] = n.Target

	return r.Partial(ctx, w, view.ItemCandidates(n.Target, n.TemplateName()), view.Data{
		Target: n.Target,
		Locals: locals,
	})
}

// NotificationID implements the routes notification interface.
func (n *Notification) NotificationID() string {
	return n.ID
}

// NotificationTarget implements the routes notification interface.
func (n *Notification) NotificationTarget() routes.Target {
	return n.Target
}

// withData returns a copy of the notification with the given entries merged
// into a cloned Data map, leaving the original untouched. Index annotation
// must never mutate stored records.
func (n Notification) withData(extra map[string]any) Notification {
	data := maps.Clone(n.Data)
	if data == nil {
		data = make(map[string]any, len(extra))
	}
	maps.Copy(data, extra)
	n.Data = data
	return n
}
