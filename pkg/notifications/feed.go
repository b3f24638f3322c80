package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/notifyview/pkg/logger"
)

// FeedDeliverer fans notifications out to in-process subscribers, keyed by
// target. Transport layers (SSE handlers, websockets) subscribe to a target
// and receive every notification delivered to it while subscribed.
//
// Delivery to a subscriber whose buffer is full is dropped rather than
// blocking the sender; the notification is already persisted and the live
// feed is a convenience layer on top.
type FeedDeliverer struct {
	mu         sync.RWMutex
	subs       map[string]map[chan Notification]struct{} // target key -> subscribers
	bufferSize int
	logger     *slog.Logger
	closed     bool
}

// FeedDelivererOption configures a FeedDeliverer.
type FeedDelivererOption func(*FeedDeliverer)

// WithFeedLogger sets the logger for the FeedDeliverer.
func WithFeedLogger(logger *slog.Logger) FeedDelivererOption {
	return func(f *FeedDeliverer) {
		f.logger = logger
	}
}

// NewFeedDeliverer creates a feed deliverer whose subscriber channels buffer
// the given number of notifications.
func NewFeedDeliverer(bufferSize int, opts ...FeedDelivererOption) *FeedDeliverer {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	f := &FeedDeliverer{
		subs:       make(map[string]map[chan Notification]struct{}),
		bufferSize: bufferSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FeedDeliverer) Deliver(ctx context.Context, notif Notification) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subs[notif.Target.Key()] {
		select {
		case ch <- notif:
		default:
			f.logger.LogAttrs(ctx, slog.LevelWarn, "Feed subscriber buffer full, dropping notification",
				logger.NotificationID(notif.ID),
				logger.TargetKey(notif.Target.Key()),
			)
		}
	}
	return nil
}

func (f *FeedDeliverer) DeliverBatch(ctx context.Context, notifs []Notification) error {
	for _, n := range notifs {
		if err := f.Deliver(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe returns a channel of the target's live notifications and a
// cancel function that must be called when the subscriber is done. The
// channel is closed on cancel and when the deliverer shuts down.
func (f *FeedDeliverer) Subscribe(target TargetRef) (<-chan Notification, func()) {
	ch := make(chan Notification, f.bufferSize)
	key := target.Key()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	set, ok := f.subs[key]
	if !ok {
		set = make(map[chan Notification]struct{})
		f.subs[key] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			if f.closed {
				// Close already closed the channel.
				f.mu.Unlock()
				return
			}
			if set, ok := f.subs[key]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(f.subs, key)
				}
			}
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Close shuts down the deliverer and closes every subscriber channel.
func (f *FeedDeliverer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	for _, set := range f.subs {
		for ch := range set {
			close(ch)
		}
	}
	f.subs = make(map[string]map[chan Notification]struct{})
	return nil
}
