package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// NotificationID records the notification identifier under the key
// "notification_id".
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// TargetKey records the notification owner's storage key under the key
// "target".
func TargetKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("target", key)
}

// Template records a template path under the key "template".
func Template(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("template", name)
}

// Route records a resolved route path under the key "route".
func Route(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}
	return slog.String("route", path)
}

// Count records a generic count under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Channel records a delivery channel name under the key "channel".
func Channel(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("channel", name)
}
