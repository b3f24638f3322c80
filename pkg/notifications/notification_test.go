package notifications

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyview/pkg/view"
)

func TestTargetRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ref          TargetRef
		wantSingular string
		wantPlural   string
		wantKey      string
	}{
		{
			name:         "regular noun",
			ref:          TargetRef{Kind: "user", ID: "42"},
			wantSingular: "user",
			wantPlural:   "users",
			wantKey:      "users/42",
		},
		{
			name:         "irregular noun with explicit plural",
			ref:          TargetRef{Kind: "person", Plural: "people", ID: "3"},
			wantSingular: "person",
			wantPlural:   "people",
			wantKey:      "people/3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantSingular, tt.ref.ResourceName())
			assert.Equal(t, tt.wantPlural, tt.ref.ResourcesName())
			assert.Equal(t, tt.ref.ID, tt.ref.ResourceID())
			assert.Equal(t, tt.wantKey, tt.ref.Key())
			assert.False(t, tt.ref.IsZero())
		})
	}

	assert.True(t, TargetRef{}.IsZero())
	assert.False(t, TargetRef{Kind: "user"}.IsZero())
}

func TestNotification_TemplateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "", want: "default"},
		{key: "comment.posted", want: "comment_posted"},
		{key: "article.comment.reply", want: "article_comment_reply"},
		{key: "welcome", want: "welcome"},
	}

	for _, tt := range tests {
		n := Notification{Key: tt.key}
		assert.Equal(t, tt.want, n.TemplateName())
	}
}

func TestNotification_IsExpired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Minute)

	assert.False(t, (&Notification{}).IsExpired())
	assert.True(t, (&Notification{ExpiresAt: &past}).IsExpired())
	assert.False(t, (&Notification{ExpiresAt: &future}).IsExpired())
}

func TestNotification_MarkAsRead(t *testing.T) {
	t.Parallel()

	n := Notification{}
	n.MarkAsRead()
	assert.True(t, n.Read)
	require.NotNil(t, n.ReadAt)
}

func TestNotification_WithData(t *testing.T) {
	t.Parallel()

	orig := Notification{Data: map[string]any{"existing": "kept"}}
	copied := orig.withData(map[string]any{"position": 1})

	assert.Equal(t, "kept", copied.Data["existing"])
	assert.Equal(t, 1, copied.Data["position"])
	assert.NotContains(t, orig.Data, "position")

	// Nil data map is materialized on the copy.
	fromNil := Notification{}.withData(map[string]any{"position": 2})
	assert.Equal(t, 2, fromNil.Data["position"])
}

func TestNotification_RenderNotification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("key-derived fragment with target scoping", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"activity_notification/notifications/users/_comment_posted.html": &fstest.MapFile{
				Data: []byte(`users:{{ (.Local "notification").Title }}`),
			},
			"activity_notification/notifications/default/_comment_posted.html": &fstest.MapFile{
				Data: []byte(`default:{{ (.Local "notification").Title }}`),
			},
		}
		r := view.New(view.NewHTMLEngine(fsys))

		n := testNotification("n1")
		n.Key = "comment.posted"

		var buf bytes.Buffer
		require.NoError(t, r.Notification(ctx, &buf, &n, view.Options{}))
		assert.Equal(t, "users:Test notification", buf.String())
	})

	t.Run("falls back to the default fragment", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"activity_notification/notifications/default/_comment_posted.html": &fstest.MapFile{
				Data: []byte(`default fragment`),
			},
		}
		r := view.New(view.NewHTMLEngine(fsys))

		n := testNotification("n1")
		n.Key = "comment.posted"

		var buf bytes.Buffer
		require.NoError(t, r.Notification(ctx, &buf, &n, view.Options{}))
		assert.Equal(t, "default fragment", buf.String())
	})

	t.Run("keyless notification uses the default name", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"activity_notification/notifications/users/_default.html": &fstest.MapFile{
				Data: []byte(`generic`),
			},
		}
		r := view.New(view.NewHTMLEngine(fsys))

		n := testNotification("n1")

		var buf bytes.Buffer
		require.NoError(t, r.Notification(ctx, &buf, &n, view.Options{}))
		assert.Equal(t, "generic", buf.String())
	})

	t.Run("missing fragment propagates not-found", func(t *testing.T) {
		t.Parallel()

		r := view.New(view.NewHTMLEngine(fstest.MapFS{}))
		n := testNotification("n1")

		var buf bytes.Buffer
		err := r.Notification(ctx, &buf, &n, view.Options{})
		require.ErrorIs(t, err, view.ErrTemplateNotFound)
		assert.Empty(t, buf.String())
	})
}

func TestNotification_RoutesShape(t *testing.T) {
	t.Parallel()

	n := testNotification("n1")
	assert.Equal(t, "n1", n.NotificationID())
	assert.Equal(t, "user", n.NotificationTarget().ResourceName())
	assert.Equal(t, "42", n.NotificationTarget().ResourceID())
}
