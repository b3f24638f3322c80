// Package notifications provides the notification domain model with
// pluggable storage and delivery, keyed by the target the notifications
// belong to.
//
// A Target is the owner entity a notification is attached to (a user, a
// team, an organization). Targets supply both resource-naming conventions —
// singular for per-instance routes, plural for collection routes and
// template directories — via TargetRef.
//
// # Architecture
//
//   - Storage: persistence, with memory, Postgres, Redis, and Mongo backends
//   - Deliverer: real-time and out-of-band delivery channels
//   - Manager: orchestration, and the view-layer notification source
//
// # Basic Usage
//
//	storage := notifications.NewMemoryStorage()
//	feed := notifications.NewFeedDeliverer(64)
//	manager := notifications.NewManager(storage, feed)
//
//	target := notifications.TargetRef{Kind: "user", ID: "42"}
//	err := manager.Send(ctx, notifications.Notification{
//		Target:  target,
//		Type:    notifications.TypeInfo,
//		Title:   "Welcome!",
//		Message: "Thanks for joining",
//	})
//
// The Manager implements the view package's Source interface, so it plugs
// straight into view.Renderer for index rendering, and Notification
// implements both view.Renderable and the routes package's Notification
// interface.
package notifications
