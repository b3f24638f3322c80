package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Target identifies the owner of notifications for route building.
type Target interface {
	// ResourceName returns the singular resource name, e.g. "user".
	ResourceName() string

	// ResourcesName returns the plural resource name, e.g. "users".
	ResourcesName() string

	// ResourceID returns the target instance identifier.
	ResourceID() string
}

// Notification is the minimal notification shape route helpers need.
type Notification interface {
	NotificationID() string
	NotificationTarget() Target
}

// RouteSet builds the four per-target notification action paths. Registered
// implementations own the URL structure for one target resource.
type RouteSet interface {
	NotificationPath(target Target, notificationID string, params url.Values) string
	MoveNotificationPath(target Target, notificationID string, params url.Values) string
	OpenNotificationPath(target Target, notificationID string, params url.Values) string
	OpenAllNotificationsPath(target Target, params url.Values) string
}

// Registry resolves RouteSets by target resource name. It is safe for
// concurrent use; registration normally happens once at startup.
type Registry struct {
	mu      sync.RWMutex
	sets    map[string]RouteSet
	baseURL string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBaseURL sets the scheme and host prepended by the URL helpers.
// A trailing slash is stripped so joined URLs never double the separator.
func WithBaseURL(base string) RegistryOption {
	return func(r *Registry) {
		r.baseURL = strings.TrimRight(base, "/")
	}
}

// New creates an empty route registry.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		sets: make(map[string]RouteSet),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a RouteSet to a target resource name. Duplicate
// registration fails so a colliding resource name surfaces at startup
// instead of silently routing to the wrong place.
func (r *Registry) Register(resource string, set RouteSet) error {
	if resource == "" {
		return ErrEmptyResourceName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[resource]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, resource)
	}
	r.sets[resource] = set
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(resource string, set RouteSet) {
	if err := r.Register(resource, set); err != nil {
		panic(err)
	}
}

func (r *Registry) setFor(resource string) (RouteSet, error) {
	r.mu.RLock()
	set, ok := r.sets[resource]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredTarget, resource)
	}
	return set, nil
}

// NotificationPath builds the path that shows a single notification.
func (r *Registry) NotificationPath(n Notification, params url.Values) (string, error) {
	target := n.NotificationTarget()
	set, err := r.setFor(target.ResourceName())
	if err != nil {
		return "", err
	}
	return set.NotificationPath(target, n.NotificationID(), params), nil
}

// MoveNotificationPath builds the path that redirects to the notifiable
// without marking the notification as opened.
func (r *Registry) MoveNotificationPath(n Notification, params url.Values) (string, error) {
	target := n.NotificationTarget()
	set, err := r.setFor(target.ResourceName())
	if err != nil {
		return "", err
	}
	return set.MoveNotificationPath(target, n.NotificationID(), params), nil
}

// OpenNotificationPath builds the path that marks the notification as
// opened and redirects to the notifiable.
func (r *Registry) OpenNotificationPath(n Notification, params url.Values) (string, error) {
	target := n.NotificationTarget()
	set, err := r.setFor(target.ResourceName())
	if err != nil {
		return "", err
	}
	return set.OpenNotificationPath(target, n.NotificationID(), params), nil
}

// OpenAllNotificationsPath builds the path that marks every notification of
// the target as opened.
func (r *Registry) OpenAllNotificationsPath(target Target, params url.Values) (string, error) {
	set, err := r.setFor(target.ResourceName())
	if err != nil {
		return "", err
	}
	return set.OpenAllNotificationsPath(target, params), nil
}

// NotificationURL is NotificationPath joined with the registry base URL.
func (r *Registry) NotificationURL(n Notification, params url.Values) (string, error) {
	path, err := r.NotificationPath(n, params)
	if err != nil {
		return "", err
	}
	return r.absolute(path)
}

// MoveNotificationURL is MoveNotificationPath joined with the base URL.
func (r *Registry) MoveNotificationURL(n Notification, params url.Values) (string, error) {
	path, err := r.MoveNotificationPath(n, params)
	if err != nil {
		return "", err
	}
	return r.absolute(path)
}

// OpenNotificationURL is OpenNotificationPath joined with the base URL.
func (r *Registry) OpenNotificationURL(n Notification, params url.Values) (string, error) {
	path, err := r.OpenNotificationPath(n, params)
	if err != nil {
		return "", err
	}
	return r.absolute(path)
}

// OpenAllNotificationsURL is OpenAllNotificationsPath joined with the base
// URL.
func (r *Registry) OpenAllNotificationsURL(target Target, params url.Values) (string, error) {
	path, err := r.OpenAllNotificationsPath(target, params)
	if err != nil {
		return "", err
	}
	return r.absolute(path)
}

func (r *Registry) absolute(path string) (string, error) {
	if r.baseURL == "" {
		return "", ErrBaseURLNotSet
	}
	return r.baseURL + path, nil
}
