package imports

import "sort"

// Registry records the distinct names referenced during one render pass,
// grouped by namespace, plus the static-import targets declared for the file.
//
// Counts are set sizes: referencing demo.a.Alpha ten times counts once.
// A Registry belongs to a single render and is discarded once planned.
type Registry struct {
	byNamespace map[string]map[string]Name
	shadowed    map[string]Name
	statics     map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byNamespace: make(map[string]map[string]Name),
		shadowed:    make(map[string]Name),
		statics:     make(map[string]struct{}),
	}
}

// Record adds a referenced name. Names in the default namespace cannot be
// imported and are ignored.
func (r *Registry) Record(n Name) {
	if n.Namespace == "" || len(n.Nested) == 0 {
		return
	}
	names, ok := r.byNamespace[n.Namespace]
	if !ok {
		names = make(map[string]Name)
		r.byNamespace[n.Namespace] = names
	}
	names[n.Canonical()] = n
}

// Shadow records a name the file references fully qualified because another
// recorded name already claims its simple name. Shadowed names are never
// imported, but an on-demand import of their namespace competes with the
// claimant's short form.
func (r *Registry) Shadow(n Name) {
	if n.Namespace == "" || len(n.Nested) == 0 {
		return
	}
	r.shadowed[n.Canonical()] = n
}

// Shadowed returns the shadowed names sorted by canonical text.
func (r *Registry) Shadowed() []Name {
	out := make([]Name, 0, len(r.shadowed))
	for _, n := range r.shadowed {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}

// AddStatic records a static-import target verbatim.
func (r *Registry) AddStatic(target string) {
	if target == "" {
		return
	}
	r.statics[target] = struct{}{}
}

// Namespaces returns every referenced namespace in lexical order.
func (r *Registry) Namespaces() []string {
	out := make([]string, 0, len(r.byNamespace))
	for ns := range r.byNamespace {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Names returns the distinct names referenced in namespace, sorted by canonical text.
func (r *Registry) Names(namespace string) []Name {
	names := r.byNamespace[namespace]
	out := make([]Name, 0, len(names))
	for _, n := range names {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}

// Count returns the number of distinct names referenced in namespace.
func (r *Registry) Count(namespace string) int {
	return len(r.byNamespace[namespace])
}

// Contains reports whether n was recorded.
func (r *Registry) Contains(n Name) bool {
	_, ok := r.byNamespace[n.Namespace][n.Canonical()]
	return ok
}

// Statics returns the static-import targets in lexical order.
func (r *Registry) Statics() []string {
	out := make([]string, 0, len(r.statics))
	for s := range r.statics {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of distinct names across all namespaces.
func (r *Registry) Len() int {
	total := 0
	for _, names := range r.byNamespace {
		total += len(names)
	}
	return total
}
