// Package httpserver runs an http.Server with environment-driven
// configuration, graceful shutdown on SIGINT/SIGTERM or context
// cancellation, and health endpoints for liveness and readiness probes.
package httpserver
