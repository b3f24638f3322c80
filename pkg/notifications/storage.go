package notifications

import (
	"context"
	"time"
)

// Storage handles notification persistence and retrieval, keyed by target.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, notif Notification) error

	// Get retrieves a single notification of the target.
	Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error)

	// List returns the target's notifications in creation order.
	List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error)

	// MarkRead marks notification(s) as read.
	MarkRead(ctx context.Context, target TargetRef, notifIDs ...string) error

	// Delete removes notification(s).
	Delete(ctx context.Context, target TargetRef, notifIDs ...string) error

	// CountUnread returns the target's unread count.
	CountUnread(ctx context.Context, target TargetRef) (int, error)
}

// ListOptions provides filtering and pagination options for listing notifications.
type ListOptions struct {
	Limit      int        // Maximum number of notifications to return (0 = no limit)
	Offset     int        // Number of notifications to skip for pagination
	OnlyUnread bool       // When true, only return unread notifications
	Types      []Type     // If specified, only return notifications of these types
	Since      *time.Time // If specified, only return notifications created after this time
}

// matches reports whether the notification passes the list filters.
// Shared by the backends that filter in application code.
func (o ListOptions) matches(n Notification) bool {
	if n.IsExpired() {
		return false
	}
	if o.OnlyUnread && n.Read {
		return false
	}
	if len(o.Types) > 0 {
		found := false
		for _, t := range o.Types {
			if n.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.Since != nil && !n.CreatedAt.After(*o.Since) {
		return false
	}
	return true
}

// paginate applies offset and limit to an already-filtered slice.
func (o ListOptions) paginate(ns []Notification) []Notification {
	if o.Offset > 0 {
		if o.Offset >= len(ns) {
			return []Notification{}
		}
		ns = ns[o.Offset:]
	}
	if o.Limit > 0 && len(ns) > o.Limit {
		ns = ns[:o.Limit]
	}
	return ns
}
