// Package redis provides the Redis connection used by the notification
// storage backend.
package redis
