package routes

import "errors"

var (
	// ErrUnregisteredTarget indicates no RouteSet is registered for the
	// target's resource name.
	ErrUnregisteredTarget = errors.New("no route set registered for target type")

	// ErrAlreadyRegistered indicates a RouteSet is already registered for
	// the resource name.
	ErrAlreadyRegistered = errors.New("route set already registered for target type")

	// ErrBaseURLNotSet indicates a URL helper was called on a registry
	// configured without a base URL.
	ErrBaseURLNotSet = errors.New("registry base URL not set")

	// ErrEmptyResourceName indicates a registration with an empty resource
	// name.
	ErrEmptyResourceName = errors.New("resource name is required")
)
