// Package inbox mounts the notification HTTP surface for a target resource:
// the rendered index page, the open/move/open_all actions, and an optional
// live feed streaming new notifications as datastar patches.
//
// Routes follow the convention implemented by routes.Conventional, so paths
// built by a routes.Registry resolve against this router:
//
//	GET  /{resources}/{target_id}/notifications
//	POST /{resources}/{target_id}/notifications/open_all
//	GET  /{resources}/{target_id}/notifications/feed
//	GET  /{resources}/{target_id}/notifications/{id}
//	GET  /{resources}/{target_id}/notifications/{id}/move
//	POST /{resources}/{target_id}/notifications/{id}/open
package inbox
