package imports

import (
	"sort"
	"strings"

	"github.com/teranos/poet/errors"
)

// Registration is a caller-declared import policy for one key.
//
// An explicit registration names an exact import string. It is emitted on its
// own when nothing else handled its key, and may carry a wildcard threshold
// for the namespace of the same name.
//
// A wildcard hint names a namespace and a threshold of at least one. It only
// steers the planner and is never emitted on its own.
type Registration struct {
	Key          string
	Threshold    int
	HasThreshold bool
	Hint         bool
}

// Explicit returns an explicit registration without a threshold.
func Explicit(name string) Registration {
	return Registration{Key: name}
}

// ExplicitWithThreshold returns an explicit registration that switches its
// namespace to the wildcard form once threshold distinct names are referenced.
func ExplicitWithThreshold(name string, threshold int) Registration {
	return Registration{Key: name, Threshold: threshold, HasThreshold: true}
}

// Hint returns a wildcard hint for namespace.
func Hint(namespace string, threshold int) Registration {
	return Registration{Key: namespace, Threshold: threshold, HasThreshold: true, Hint: true}
}

// Validate checks the registration on its own.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return errors.NewConfigurationError("import name is empty")
	}
	if r.Hint && r.Threshold < 1 {
		return errors.WithHint(
			errors.NewConfigurationError("wildcard hint threshold for %s is %d", r.Key, r.Threshold),
			"wildcard hint thresholds start at 1")
	}
	if r.HasThreshold && r.Threshold < 0 {
		return errors.NewConfigurationError("wildcard threshold for %s is negative (%d)", r.Key, r.Threshold)
	}
	return nil
}

// meets reports whether count reaches the registration's own threshold.
func (r Registration) meets(count int) bool {
	return r.HasThreshold && count >= r.Threshold
}

// Registrations holds at most one Registration per key.
type Registrations struct {
	byKey map[string]Registration
}

// NewRegistrations returns an empty set.
func NewRegistrations() *Registrations {
	return &Registrations{byKey: make(map[string]Registration)}
}

// Add validates r and stores it. A second registration for the same key is a
// configuration error, whatever its kind.
func (rs *Registrations) Add(r Registration) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, exists := rs.byKey[r.Key]; exists {
		return errors.NewConfigurationError("duplicate import %s", r.Key)
	}
	rs.byKey[r.Key] = r
	return nil
}

// Lookup returns the registration for key.
func (rs *Registrations) Lookup(key string) (Registration, bool) {
	if rs == nil {
		return Registration{}, false
	}
	r, ok := rs.byKey[key]
	return r, ok
}

// All returns every registration sorted by key.
func (rs *Registrations) All() []Registration {
	if rs == nil {
		return nil
	}
	out := make([]Registration, 0, len(rs.byKey))
	for _, r := range rs.byKey {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of registrations.
func (rs *Registrations) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.byKey)
}

// Clone returns an independent copy.
func (rs *Registrations) Clone() *Registrations {
	out := NewRegistrations()
	if rs == nil {
		return out
	}
	for k, r := range rs.byKey {
		out.byKey[k] = r
	}
	return out
}
