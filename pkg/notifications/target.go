package notifications

// TargetRef identifies the owner entity a notification is attached to.
// It carries both naming conventions used to build template and route
// paths: the singular Kind for per-instance routes and the plural form for
// collection routes and template directories.
type TargetRef struct {
	// Kind is the singular resource name, e.g. "user".
	Kind string `json:"kind" bson:"kind"`

	// Plural overrides the plural resource name for irregular nouns,
	// e.g. "people". Empty derives Kind + "s".
	Plural string `json:"plural,omitempty" bson:"plural,omitempty"`

	// ID is the target instance identifier.
	ID string `json:"id" bson:"id"`
}

// ResourceName returns the singular resource name.
func (t TargetRef) ResourceName() string {
	return t.Kind
}

// ResourcesName returns the plural resource name.
func (t TargetRef) ResourcesName() string {
	if t.Plural != "" {
		return t.Plural
	}
	return t.Kind + "s"
}

// ResourceID returns the target instance identifier.
func (t TargetRef) ResourceID() string {
	return t.ID
}

// Key returns the storage key for the target, e.g. "users/42".
func (t TargetRef) Key() string {
	return t.ResourcesName() + "/" + t.ID
}

// IsZero reports whether the reference identifies nothing.
func (t TargetRef) IsZero() bool {
	return t.Kind == "" && t.ID == ""
}
