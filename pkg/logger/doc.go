// Package logger provides slog attribute helpers with consistent keys for
// the notification domain, so log records stay queryable across packages.
//
// Helpers return an empty Attr for nil input, which slog drops from the
// record, allowing unconditional call sites:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "delivery failed",
//		logger.NotificationID(notif.ID),
//		logger.TargetKey(notif.Target.Key()),
//		logger.Error(err),
//	)
package logger
