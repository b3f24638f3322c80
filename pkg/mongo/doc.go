// Package mongo provides the MongoDB connection used by the notification
// storage backend.
package mongo
