package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is a Storage implementation backed by PostgreSQL via pgx.
// The schema is applied by pg.Migrate from the embedded migrations.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed notification storage over an
// existing connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return ErrEmptyNotificationID
	}
	if notif.Target.IsZero() {
		return ErrEmptyTarget
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	data, err := json.Marshal(notif.Data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}
	actions, err := json.Marshal(notif.Actions)
	if err != nil {
		return fmt.Errorf("marshal notification actions: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notifications (
			id, target_kind, target_plural, target_id, key, type, priority,
			title, message, data, actions, notifiable_path,
			read, read_at, created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		notif.ID, notif.Target.Kind, notif.Target.Plural, notif.Target.ID,
		notif.Key, string(notif.Type), int(notif.Priority),
		notif.Title, notif.Message, data, actions, notif.NotifiablePath,
		notif.Read, notif.ReadAt, notif.CreatedAt, notif.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error) {
	row := s.pool.QueryRow(ctx, selectColumns+`
		FROM notifications
		WHERE target_kind = $1 AND target_id = $2 AND id = $3`,
		target.Kind, target.ID, notifID,
	)

	notif, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return notif, nil
}

func (s *PostgresStorage) List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error) {
	query := selectColumns + `
		FROM notifications
		WHERE target_kind = $1 AND target_id = $2
		  AND (expires_at IS NULL OR expires_at > now())`
	args := []any{target.Kind, target.ID}

	if opts.OnlyUnread {
		query += ` AND read = false`
	}
	if len(opts.Types) > 0 {
		types := make([]string, len(opts.Types))
		for i, t := range opts.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		query += fmt.Sprintf(` AND type = ANY($%d)`, len(args))
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		query += fmt.Sprintf(` AND created_at > $%d`, len(args))
	}

	query += ` ORDER BY created_at, id`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifs := []Notification{}
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *notif)
	}
	return notifs, rows.Err()
}

func (s *PostgresStorage) MarkRead(ctx context.Context, target TargetRef, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET read = true, read_at = now()
		WHERE target_kind = $1 AND target_id = $2 AND id = ANY($3) AND read = false`,
		target.Kind, target.ID, notifIDs,
	)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, target TargetRef, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE target_kind = $1 AND target_id = $2 AND id = ANY($3)`,
		target.Kind, target.ID, notifIDs,
	)
	if err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, target TargetRef) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM notifications
		WHERE target_kind = $1 AND target_id = $2 AND read = false
		  AND (expires_at IS NULL OR expires_at > now())`,
		target.Kind, target.ID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

const selectColumns = `
		SELECT id, target_kind, target_plural, target_id, key, type, priority,
		       title, message, data, actions, notifiable_path,
		       read, read_at, created_at, expires_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var (
		notif    Notification
		typ      string
		priority int
		data     []byte
		actions  []byte
	)
	err := row.Scan(
		&notif.ID, &notif.Target.Kind, &notif.Target.Plural, &notif.Target.ID,
		&notif.Key, &typ, &priority,
		&notif.Title, &notif.Message, &data, &actions, &notif.NotifiablePath,
		&notif.Read, &notif.ReadAt, &notif.CreatedAt, &notif.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	notif.Type = Type(typ)
	notif.Priority = Priority(priority)
	if len(data) > 0 && !strings.EqualFold(string(data), "null") {
		if err := json.Unmarshal(data, &notif.Data); err != nil {
			return nil, fmt.Errorf("unmarshal notification data: %w", err)
		}
	}
	if len(actions) > 0 && !strings.EqualFold(string(actions), "null") {
		if err := json.Unmarshal(actions, &notif.Actions); err != nil {
			return nil, fmt.Errorf("unmarshal notification actions: %w", err)
		}
	}
	return &notif, nil
}
