package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a Storage implementation backed by Redis. Notifications
// are stored as JSON in a per-target hash, with a sorted set keeping
// creation order. Filtering happens in application code after load, which
// fits the cache-sized collections this backend is meant for.
type RedisStorage struct {
	client    *redis.Client
	keyPrefix string
}

// RedisStorageOption configures a RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithRedisKeyPrefix overrides the key namespace. Default "notifyview".
func WithRedisKeyPrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStorage creates a Redis-backed notification storage over an
// existing client.
func NewRedisStorage(client *redis.Client, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client:    client,
		keyPrefix: "notifyview",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) hashKey(target TargetRef) string {
	return s.keyPrefix + ":notifications:" + target.Key()
}

func (s *RedisStorage) indexKey(target TargetRef) string {
	return s.keyPrefix + ":notifications_index:" + target.Key()
}

func (s *RedisStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return ErrEmptyNotificationID
	}
	if notif.Target.IsZero() {
		return ErrEmptyTarget
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	raw, err := json.Marshal(notif)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.hashKey(notif.Target), notif.ID, raw)
	pipe.ZAdd(ctx, s.indexKey(notif.Target), redis.Z{
		Score:  float64(notif.CreatedAt.UnixNano()),
		Member: notif.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

func (s *RedisStorage) Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error) {
	raw, err := s.client.HGet(ctx, s.hashKey(target), notifID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}

	var notif Notification
	if err := json.Unmarshal([]byte(raw), &notif); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &notif, nil
}

func (s *RedisStorage) List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error) {
	notifs, err := s.load(ctx, target)
	if err != nil {
		return nil, err
	}

	filtered := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if opts.matches(n) {
			filtered = append(filtered, n)
		}
	}
	return opts.paginate(filtered), nil
}

func (s *RedisStorage) MarkRead(ctx context.Context, target TargetRef, notifIDs ...string) error {
	for _, id := range notifIDs {
		notif, err := s.Get(ctx, target, id)
		if err != nil {
			if err == ErrNotificationNotFound {
				continue
			}
			return err
		}
		if notif.Read {
			continue
		}
		notif.MarkAsRead()

		raw, err := json.Marshal(notif)
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		if err := s.client.HSet(ctx, s.hashKey(target), id, raw).Err(); err != nil {
			return fmt.Errorf("update notification: %w", err)
		}
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, target TargetRef, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}

	members := make([]any, len(notifIDs))
	for i, id := range notifIDs {
		members[i] = id
	}

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.hashKey(target), notifIDs...)
	pipe.ZRem(ctx, s.indexKey(target), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}

func (s *RedisStorage) CountUnread(ctx context.Context, target TargetRef) (int, error) {
	notifs, err := s.load(ctx, target)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifs {
		if !n.Read && !n.IsExpired() {
			count++
		}
	}
	return count, nil
}

// load returns the target's notifications in creation order.
func (s *RedisStorage) load(ctx context.Context, target TargetRef) ([]Notification, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(target), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notification ids: %w", err)
	}
	if len(ids) == 0 {
		return []Notification{}, nil
	}

	raws, err := s.client.HMGet(ctx, s.hashKey(target), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}

	notifs := make([]Notification, 0, len(raws))
	for _, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			// Index entry without a hash record, skip the orphan.
			continue
		}
		var notif Notification
		if err := json.Unmarshal([]byte(str), &notif); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		notifs = append(notifs, notif)
	}
	return notifs, nil
}
