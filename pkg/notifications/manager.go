package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifyview/pkg/logger"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

// Data keys the annotated index attaches to each notification's payload.
const (
	// DataIndexPosition is the 1-based position of the notification in the
	// rendered index.
	DataIndexPosition = "index_position"

	// DataUnreadCount is the target's unread count at render time.
	DataUnreadCount = "unread_count"
)

// Manager orchestrates notification storage and delivery, and serves as the
// view layer's notification source.
type Manager struct {
	storage   Storage
	deliverer Deliverer
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new notification manager.
func NewManager(storage Storage, deliverer Deliverer, opts ...ManagerOption) *Manager {
	if deliverer == nil {
		deliverer = &NoOpDeliverer{}
	}

	m := &Manager{
		storage:   storage,
		deliverer: deliverer,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) Send(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		notif.ID = uuid.New().String()
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	// Store first so the notification survives even if real-time delivery fails
	if err := m.storage.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	// Best-effort delivery: the notification is persisted and available
	// for retrieval regardless of channel failures
	if err := m.deliverer.Deliver(ctx, notif); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to deliver notification, but it was stored successfully",
			logger.NotificationID(notif.ID),
			logger.TargetKey(notif.Target.Key()),
			logger.Error(err),
		)
	}

	return nil
}

// SendToTargets stores one copy of the template notification per target and
// delivers the batch best-effort.
func (m *Manager) SendToTargets(ctx context.Context, targets []TargetRef, template Notification) error {
	notifs := make([]Notification, 0, len(targets))

	for _, target := range targets {
		notif := template
		notif.ID = uuid.New().String()
		notif.Target = target
		notif.CreatedAt = time.Now()

		if err := m.storage.Create(ctx, notif); err != nil {
			return fmt.Errorf("failed to store notification for target %s: %w", target.Key(), err)
		}

		notifs = append(notifs, notif)
	}

	if err := m.deliverer.DeliverBatch(ctx, notifs); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to deliver notification batch, but they were stored successfully",
			logger.Count(len(notifs)),
			logger.Error(err),
		)
	}

	return nil
}

func (m *Manager) SendBatch(ctx context.Context, notifs []Notification) error {
	for i := range notifs {
		if notifs[i].ID == "" {
			notifs[i].ID = uuid.New().String()
		}
		if notifs[i].CreatedAt.IsZero() {
			notifs[i].CreatedAt = time.Now()
		}

		if err := m.storage.Create(ctx, notifs[i]); err != nil {
			return fmt.Errorf("failed to store notification %s: %w", notifs[i].ID, err)
		}
	}

	if err := m.deliverer.DeliverBatch(ctx, notifs); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to deliver notification batch, but they were stored successfully",
			logger.Count(len(notifs)),
			logger.Error(err),
		)
	}

	return nil
}

func (m *Manager) Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error) {
	return m.storage.Get(ctx, target, notifID)
}

func (m *Manager) List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error) {
	return m.storage.List(ctx, target, opts)
}

// Open marks the notification as read and returns the path the caller
// should redirect to: the notification's notifiable path, or "" when none
// was recorded.
func (m *Manager) Open(ctx context.Context, target TargetRef, notifID string) (string, error) {
	notif, err := m.storage.Get(ctx, target, notifID)
	if err != nil {
		return "", err
	}
	if err := m.storage.MarkRead(ctx, target, notifID); err != nil {
		return "", err
	}
	return notif.NotifiablePath, nil
}

// OpenAll marks every unread notification of the target as read and returns
// how many were affected.
func (m *Manager) OpenAll(ctx context.Context, target TargetRef) (int, error) {
	notifs, err := m.storage.List(ctx, target, ListOptions{OnlyUnread: true})
	if err != nil {
		return 0, err
	}
	if len(notifs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(notifs))
	for i, n := range notifs {
		ids[i] = n.ID
	}
	if err := m.storage.MarkRead(ctx, target, ids...); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (m *Manager) Delete(ctx context.Context, target TargetRef, notifIDs ...string) error {
	return m.storage.Delete(ctx, target, notifIDs...)
}

func (m *Manager) CountUnread(ctx context.Context, target TargetRef) (int, error) {
	return m.storage.CountUnread(ctx, target)
}

// Notifications implements view.Source with the target's plain list.
func (m *Manager) Notifications(ctx context.Context, target view.Target) ([]view.Renderable, error) {
	notifs, err := m.storage.List(ctx, refOf(target), ListOptions{})
	if err != nil {
		return nil, err
	}
	return renderables(notifs), nil
}

// NotificationIndex implements view.Source with the annotated list: each
// notification's payload carries its index position and the target's unread
// count. Annotation happens on copies, never on stored records.
func (m *Manager) NotificationIndex(ctx context.Context, target view.Target) ([]view.Renderable, error) {
	ref := refOf(target)

	notifs, err := m.storage.List(ctx, ref, ListOptions{})
	if err != nil {
		return nil, err
	}
	unread, err := m.storage.CountUnread(ctx, ref)
	if err != nil {
		return nil, err
	}

	annotated := make([]Notification, len(notifs))
	for i, n := range notifs {
		annotated[i] = n.withData(map[string]any{
			DataIndexPosition: i + 1,
			DataUnreadCount:   unread,
		})
	}
	return renderables(annotated), nil
}

// Storage returns the underlying notification storage.
func (m *Manager) Storage() Storage {
	return m.storage
}

// Deliverer returns the underlying notification deliverer.
func (m *Manager) Deliverer() Deliverer {
	return m.deliverer
}

// refOf recovers a TargetRef from any view target, preserving the concrete
// reference when one was passed through.
func refOf(t view.Target) TargetRef {
	if ref, ok := t.(TargetRef); ok {
		return ref
	}
	return TargetRef{
		Kind:   t.ResourceName(),
		Plural: t.ResourcesName(),
		ID:     t.ResourceID(),
	}
}

func renderables(notifs []Notification) []view.Renderable {
	items := make([]view.Renderable, len(notifs))
	for i := range notifs {
		items[i] = &notifs[i]
	}
	return items
}
