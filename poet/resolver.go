package poet

import (
	"io"

	"github.com/teranos/poet/imports"
)

// referenceCollector remembers which classes a dry render could import.
//
// The first class seen for a simple name claims it. A simple name that is
// also written unqualified for a class of the current package is never
// importable. Classes that lose their simple name to another are kept as
// shadowed so the planner can tell when a wildcard would make a short name
// ambiguous.
type referenceCollector struct {
	candidates map[string]ClassName
	shadowed   map[string]ClassName
	referenced map[string]bool
}

func newReferenceCollector() *referenceCollector {
	return &referenceCollector{
		candidates: make(map[string]ClassName),
		shadowed:   make(map[string]ClassName),
		referenced: make(map[string]bool),
	}
}

func (c *referenceCollector) importable(name ClassName) {
	if name.packageName == "" {
		return
	}
	top := name.TopLevelClassName()
	claimant, claimed := c.candidates[top.SimpleName()]
	switch {
	case !claimed:
		c.candidates[top.SimpleName()] = top
	case !claimant.Equal(top):
		c.shadowed[top.CanonicalName()] = top
	}
}

func (c *referenceCollector) reference(simple string) {
	c.referenced[simple] = true
}

func (c *referenceCollector) registry() *imports.Registry {
	reg := imports.NewRegistry()
	for simple, name := range c.candidates {
		if c.referenced[simple] {
			continue
		}
		reg.Record(name.Qualified())
	}
	for _, name := range c.shadowed {
		reg.Shadow(name.Qualified())
	}
	return reg
}

// collectReferences is the dry pass: it renders the whole file into a
// discarding sink and returns every importable reference plus the file's
// static-import targets.
func (f *File) collectReferences() (*imports.Registry, error) {
	w := newCollectingWriter(io.Discard, f.indent, f.staticImports)
	if err := f.emit(w, nil); err != nil {
		return nil, err
	}
	reg := w.collector.registry()
	for _, s := range f.staticImports {
		reg.AddStatic(s)
	}
	return reg, nil
}
