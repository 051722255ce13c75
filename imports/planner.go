package imports

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/poet/logger"
)

// Line is one ordinary import line of a plan.
type Line struct {
	// Target is the text between "import " and ";".
	Target string
	// Wildcard is set when Target is a namespace wildcard.
	Wildcard bool
	// Standalone is set for explicit registrations emitted as given.
	Standalone bool
}

func (l Line) String() string {
	return "import " + l.Target + ";"
}

// Plan is the finalized import decision for one file. Beyond the header lines
// it answers which names the body may write in short form.
type Plan struct {
	Statics []string
	Lines   []Line

	available map[string]Name
	handled   map[string]bool
}

// Lookup returns the name a short identifier refers to, if an accepted
// explicit import, an accepted wildcard, or the skipped built-in namespace
// makes it available.
func (p *Plan) Lookup(simple string) (Name, bool) {
	if p == nil {
		return Name{}, false
	}
	n, ok := p.available[simple]
	return n, ok
}

// Covers reports whether n may be written by its simple name.
func (p *Plan) Covers(n Name) bool {
	top := n.TopLevel()
	got, ok := p.Lookup(top.SimpleName())
	return ok && got.Canonical() == top.Canonical()
}

// Handled reports whether the planner decided namespace's form.
func (p *Plan) Handled(namespace string) bool {
	return p != nil && p.handled[namespace]
}

// StaticLines returns the rendered static import lines.
func (p *Plan) StaticLines() []string {
	out := make([]string, 0, len(p.Statics))
	for _, s := range p.Statics {
		out = append(out, "import static "+s+";")
	}
	return out
}

// ImportLines returns the rendered ordinary import lines.
func (p *Plan) ImportLines() []string {
	out := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		out = append(out, l.String())
	}
	return out
}

// Wildcards returns the namespaces collapsed into wildcard lines.
func (p *Plan) Wildcards() []string {
	var out []string
	for _, l := range p.Lines {
		if l.Wildcard {
			out = append(out, l.Target[:len(l.Target)-len(".*")])
		}
	}
	return out
}

// Empty reports whether the plan emits no import line at all.
func (p *Plan) Empty() bool {
	return p == nil || (len(p.Statics) == 0 && len(p.Lines) == 0)
}

// Planner turns a registry into a Plan.
type Planner struct {
	Registrations *Registrations
	Policy        WildcardPolicy
	SkipBuiltin   bool
	Logger        *zap.SugaredLogger
}

// Plan decides the import lines for everything recorded in reg.
//
// Namespaces are visited in lexical order. The step order below is observable
// in the output for overlapping inputs and must not be rearranged.
func (p Planner) Plan(reg *Registry) *Plan {
	log := p.logger()
	if reg == nil {
		reg = NewRegistry()
	}

	plan := &Plan{
		Statics:   reg.Statics(),
		available: make(map[string]Name),
		handled:   make(map[string]bool),
	}
	emitted := make(map[string]bool)
	emit := func(l Line) {
		if emitted[l.Target] {
			return
		}
		emitted[l.Target] = true
		plan.Lines = append(plan.Lines, l)
	}

	for _, ns := range reg.Namespaces() {
		names := reg.Names(ns)

		if p.SkipBuiltin && ns == BuiltinNamespace {
			p.expose(plan, names)
			continue
		}

		count := len(names)
		wildcard := false
		if r, ok := p.Registrations.Lookup(ns); ok {
			wildcard = r.meets(count) || p.Policy.Meets(count)
		} else if p.Policy.Enabled() {
			wildcard = p.Policy.Meets(count)
		}

		if wildcard {
			emit(Line{Target: Wildcard(ns), Wildcard: true})
		} else {
			for _, n := range names {
				emit(Line{Target: n.Canonical()})
			}
		}
		plan.handled[ns] = true
		p.expose(plan, names)

		log.Debugw("Namespace planned",
			logger.FieldPackage, ns,
			logger.FieldCount, count,
			logger.FieldWildcards, wildcard)
	}

	for _, r := range p.Registrations.All() {
		if r.Hint || plan.handled[r.Key] {
			continue
		}
		emit(Line{Target: r.Key, Standalone: true})
	}

	p.disambiguate(plan, reg, emitted)

	log.Debugw("Import plan computed",
		logger.FieldNamespaces, len(plan.handled),
		logger.FieldImportLines, len(plan.Lines),
		logger.FieldStaticImports, len(plan.Statics))
	return plan
}

// disambiguate withdraws the short form of a name that is available only on
// demand when a shadowed name with the same simple name is on demand as well.
// Both would be in scope through a wildcard (or java.lang, which is always
// imported on demand) and the short name would be ambiguous. A single-type
// import line takes precedence over on-demand imports and keeps its short form.
func (p Planner) disambiguate(plan *Plan, reg *Registry, singleType map[string]bool) {
	onDemand := map[string]bool{BuiltinNamespace: true}
	for _, l := range plan.Lines {
		if strings.HasSuffix(l.Target, ".*") {
			onDemand[strings.TrimSuffix(l.Target, ".*")] = true
		}
	}

	for _, shadow := range reg.Shadowed() {
		if !onDemand[shadow.Namespace] {
			continue
		}
		simple := shadow.SimpleName()
		claimant, ok := plan.available[simple]
		if !ok || singleType[claimant.Canonical()] {
			continue
		}
		delete(plan.available, simple)
		p.logger().Debugw("Short name withdrawn",
			logger.FieldType, claimant.Canonical(),
			logger.FieldPackage, shadow.Namespace)
	}
}

func (p Planner) logger() *zap.SugaredLogger {
	if p.Logger == nil {
		return logger.ComponentLogger("poet.imports")
	}
	return p.Logger
}

func (p Planner) expose(plan *Plan, names []Name) {
	for _, n := range names {
		top := n.TopLevel()
		if _, taken := plan.available[top.SimpleName()]; !taken {
			plan.available[top.SimpleName()] = top
		}
	}
}
