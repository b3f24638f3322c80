// Package routes builds per-target notification action paths and URLs.
//
// Instead of composing route-helper names at runtime, each target resource
// registers a RouteSet in a Registry keyed by its singular resource name.
// Lookups of unregistered target types fail with ErrUnregisteredTarget,
// turning a silent wrong-route hazard into an explicit error.
//
//	reg := routes.New(routes.WithBaseURL("https://app.example.com"))
//	reg.MustRegister("user", routes.Conventional{})
//
//	path, err := reg.OpenNotificationPath(notif, nil)
//	// => /users/42/notifications/7/open
//
// Conventional implements the fixed RESTful convention used by the inbox
// module; applications with custom routing register their own RouteSet.
package routes
