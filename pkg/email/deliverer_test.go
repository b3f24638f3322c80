package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyview/pkg/notifications"
)

func validConfig() Config {
	return Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		SupportEmail:         "support@example.com",
	}
}

func staticResolver(addr string) AddressResolver {
	return func(ctx context.Context, target notifications.TargetRef) (string, error) {
		return addr, nil
	}
}

func TestNewDeliverer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     func() Config
		resolve AddressResolver
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     validConfig,
			resolve: staticResolver("user@example.com"),
		},
		{
			name: "missing server token",
			cfg: func() Config {
				cfg := validConfig()
				cfg.PostmarkServerToken = ""
				return cfg
			},
			resolve: staticResolver("user@example.com"),
			wantErr: true,
		},
		{
			name: "missing account token",
			cfg: func() Config {
				cfg := validConfig()
				cfg.PostmarkAccountToken = ""
				return cfg
			},
			resolve: staticResolver("user@example.com"),
			wantErr: true,
		},
		{
			name: "invalid sender email",
			cfg: func() Config {
				cfg := validConfig()
				cfg.SenderEmail = "not-an-email"
				return cfg
			},
			resolve: staticResolver("user@example.com"),
			wantErr: true,
		},
		{
			name: "invalid support email",
			cfg: func() Config {
				cfg := validConfig()
				cfg.SupportEmail = "also not an email"
				return cfg
			},
			resolve: staticResolver("user@example.com"),
			wantErr: true,
		},
		{
			name: "empty support email is allowed",
			cfg: func() Config {
				cfg := validConfig()
				cfg.SupportEmail = ""
				return cfg
			},
			resolve: staticResolver("user@example.com"),
		},
		{
			name:    "nil resolver",
			cfg:     validConfig,
			resolve: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDeliverer(tt.cfg(), tt.resolve)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, d)
		})
	}
}

func TestDeliverer_PriorityGate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("below threshold skips the resolver entirely", func(t *testing.T) {
		t.Parallel()

		resolverCalled := false
		d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
			resolverCalled = true
			return "user@example.com", nil
		})
		require.NoError(t, err)

		notif := notifications.Notification{
			ID:       "n1",
			Target:   notifications.TargetRef{Kind: "user", ID: "42"},
			Priority: notifications.PriorityNormal,
		}
		require.NoError(t, d.Deliver(ctx, notif))
		assert.False(t, resolverCalled)
	})

	t.Run("custom threshold", func(t *testing.T) {
		t.Parallel()

		resolverCalled := false
		d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
			resolverCalled = true
			return "", ErrNoRecipient
		}, WithMinPriority(notifications.PriorityLow))
		require.NoError(t, err)

		notif := notifications.Notification{
			ID:       "n1",
			Target:   notifications.TargetRef{Kind: "user", ID: "42"},
			Priority: notifications.PriorityLow,
		}
		require.NoError(t, d.Deliver(ctx, notif))
		assert.True(t, resolverCalled)
	})
}

func TestDeliverer_Resolver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	urgent := notifications.Notification{
		ID:       "n1",
		Target:   notifications.TargetRef{Kind: "user", ID: "42"},
		Priority: notifications.PriorityUrgent,
	}

	t.Run("no recipient skips without error", func(t *testing.T) {
		t.Parallel()

		d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
			return "", ErrNoRecipient
		})
		require.NoError(t, err)
		require.NoError(t, d.Deliver(ctx, urgent))
	})

	t.Run("resolver failure propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("directory unavailable")
		d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
			return "", boom
		})
		require.NoError(t, err)
		require.ErrorIs(t, d.Deliver(ctx, urgent), boom)
	})

	t.Run("resolver receives the notification target", func(t *testing.T) {
		t.Parallel()

		var seen notifications.TargetRef
		d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
			seen = target
			return "", ErrNoRecipient
		})
		require.NoError(t, err)
		require.NoError(t, d.Deliver(ctx, urgent))
		assert.Equal(t, urgent.Target, seen)
	})
}

func TestDeliverer_DeliverBatch_BestEffort(t *testing.T) {
	t.Parallel()

	// One failing resolve must not stop the rest of the batch.
	var resolved []string
	d, err := NewDeliverer(validConfig(), func(ctx context.Context, target notifications.TargetRef) (string, error) {
		resolved = append(resolved, target.ID)
		if target.ID == "2" {
			return "", errors.New("lookup failed")
		}
		return "", ErrNoRecipient
	})
	require.NoError(t, err)

	batch := []notifications.Notification{
		{ID: "n1", Target: notifications.TargetRef{Kind: "user", ID: "1"}, Priority: notifications.PriorityUrgent},
		{ID: "n2", Target: notifications.TargetRef{Kind: "user", ID: "2"}, Priority: notifications.PriorityUrgent},
		{ID: "n3", Target: notifications.TargetRef{Kind: "user", ID: "3"}, Priority: notifications.PriorityUrgent},
	}
	require.NoError(t, d.DeliverBatch(context.Background(), batch))
	assert.Equal(t, []string{"1", "2", "3"}, resolved)
}

func TestBodyHTML(t *testing.T) {
	t.Parallel()

	notif := notifications.Notification{
		Title:   "Quarterly <report>",
		Message: `Results are "in" & ready`,
		Actions: []notifications.Action{
			{Label: "View <now>", URL: "https://example.com/reports?q=1&r=2"},
		},
	}

	body := bodyHTML(notif)
	assert.Contains(t, body, "<h2>Quarterly &lt;report&gt;</h2>")
	assert.Contains(t, body, "&amp; ready")
	assert.Contains(t, body, "View &lt;now&gt;")
	assert.NotContains(t, body, "<report>")
}
