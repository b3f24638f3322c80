package mongo

import "errors"

// ErrFailedToConnect indicates every connection attempt failed.
var ErrFailedToConnect = errors.New("failed to connect to mongo")
