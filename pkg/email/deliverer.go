package email

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/notifyview/pkg/logger"
	"github.com/dmitrymomot/notifyview/pkg/notifications"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AddressResolver maps a notification target to an email address.
// Returning ErrNoRecipient skips the target without failing the batch.
type AddressResolver func(ctx context.Context, target notifications.TargetRef) (string, error)

// Deliverer sends notifications over email through Postmark. It implements
// notifications.Deliverer as an out-of-band channel: only notifications at
// or above MinPriority are mailed.
type Deliverer struct {
	client      *postmark.Client
	config      Config
	resolve     AddressResolver
	minPriority notifications.Priority
	logger      *slog.Logger
}

// DelivererOption configures a Deliverer.
type DelivererOption func(*Deliverer)

// WithMinPriority sets the lowest priority that is mailed.
// Default is PriorityHigh.
func WithMinPriority(p notifications.Priority) DelivererOption {
	return func(d *Deliverer) {
		d.minPriority = p
	}
}

// WithDelivererLogger sets the logger for the Deliverer.
func WithDelivererLogger(logger *slog.Logger) DelivererOption {
	return func(d *Deliverer) {
		d.logger = logger
	}
}

// NewDeliverer creates a Postmark-backed email deliverer. Configuration is
// validated eagerly so a broken email channel prevents startup.
func NewDeliverer(cfg Config, resolve AddressResolver, opts ...DelivererOption) (*Deliverer, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail != "" && !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	if resolve == nil {
		return nil, fmt.Errorf("%w: address resolver is required", ErrInvalidConfig)
	}

	d := &Deliverer{
		client:      postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config:      cfg,
		resolve:     resolve,
		minPriority: notifications.PriorityHigh,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Deliver mails a single notification when its priority qualifies.
func (d *Deliverer) Deliver(ctx context.Context, notif notifications.Notification) error {
	if notif.Priority < d.minPriority {
		return nil
	}

	addr, err := d.resolve(ctx, notif.Target)
	if err != nil {
		if errors.Is(err, ErrNoRecipient) {
			d.logger.LogAttrs(ctx, slog.LevelDebug, "No email recipient for notification target",
				logger.NotificationID(notif.ID),
				logger.TargetKey(notif.Target.Key()),
			)
			return nil
		}
		return err
	}

	resp, err := d.client.SendEmail(ctx, postmark.Email{
		From:       d.config.SenderEmail,
		ReplyTo:    d.config.SupportEmail,
		To:         addr,
		Subject:    notif.Title,
		Tag:        string(notif.Type),
		HTMLBody:   bodyHTML(notif),
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// DeliverBatch mails qualifying notifications one by one, best-effort: a
// failed send is logged and does not block the rest of the batch.
func (d *Deliverer) DeliverBatch(ctx context.Context, notifs []notifications.Notification) error {
	for _, n := range notifs {
		if err := d.Deliver(ctx, n); err != nil {
			d.logger.LogAttrs(ctx, slog.LevelError, "Failed to deliver notification email",
				logger.NotificationID(n.ID),
				logger.TargetKey(n.Target.Key()),
				logger.Channel("email"),
				logger.Error(err),
			)
		}
	}
	return nil
}

// bodyHTML builds a minimal HTML body from the notification content.
// Applications wanting branded mail should wrap the deliverer with their
// own template-backed channel.
func bodyHTML(notif notifications.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", template.HTMLEscapeString(notif.Title))
	fmt.Fprintf(&b, "<p>%s</p>", template.HTMLEscapeString(notif.Message))
	for _, action := range notif.Actions {
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`,
			template.HTMLEscapeString(action.URL),
			template.HTMLEscapeString(action.Label),
		)
	}
	return b.String()
}
