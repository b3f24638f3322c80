package notifications

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	notifications map[string][]Notification // target key -> notifications
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[string][]Notification),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if notif.ID == "" {
		return ErrEmptyNotificationID
	}
	if notif.Target.IsZero() {
		return ErrEmptyTarget
	}

	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	key := notif.Target.Key()
	s.notifications[key] = append(s.notifications[key], notif)
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications[target.Key()] {
		if n.ID == notifID {
			// Return a copy to prevent external mutation of stored data
			notif := n
			return &notif, nil
		}
	}

	return nil, ErrNotificationNotFound
}

func (s *MemoryStorage) List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.notifications[target.Key()]
	if !exists {
		return []Notification{}, nil
	}

	filtered := make([]Notification, 0, len(stored))
	for _, n := range stored {
		if opts.matches(n) {
			filtered = append(filtered, n)
		}
	}

	return opts.paginate(filtered), nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, target TargetRef, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.notifications[target.Key()]
	for _, id := range notifIDs {
		for i := range stored {
			if stored[i].ID == id {
				stored[i].MarkAsRead()
				break
			}
		}
	}
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, target TargetRef, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := target.Key()
	stored := s.notifications[key]
	remaining := stored[:0]
	for _, n := range stored {
		keep := true
		for _, id := range notifIDs {
			if n.ID == id {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, n)
		}
	}
	s.notifications[key] = remaining
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, target TargetRef) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications[target.Key()] {
		if !n.Read && !n.IsExpired() {
			count++
		}
	}
	return count, nil
}
