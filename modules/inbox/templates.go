package inbox

import (
	"embed"
	"io/fs"
)

// The all: prefix is required: fragment templates are underscore-prefixed
// and plain embed patterns skip files starting with "_".
//
//go:embed all:templates
var templatesFS embed.FS

// Templates returns the stock notification templates: the generic index
// partial, the default notification fragment, and a minimal layout.
// Applications overlay their own target-specific templates on top, e.g.
// with a composite fs.FS that shadows the default paths.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The embedded tree always contains "templates".
		panic(err)
	}
	return sub
}
