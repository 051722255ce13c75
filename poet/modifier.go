package poet

import "sort"

// Modifier is a Java declaration modifier.
type Modifier string

// Modifiers in the order Java source conventionally writes them.
const (
	Public       Modifier = "public"
	Protected    Modifier = "protected"
	Private      Modifier = "private"
	Abstract     Modifier = "abstract"
	Default      Modifier = "default"
	Static       Modifier = "static"
	Final        Modifier = "final"
	Transient    Modifier = "transient"
	Volatile     Modifier = "volatile"
	Synchronized Modifier = "synchronized"
	Native       Modifier = "native"
	Strictfp     Modifier = "strictfp"
)

var modifierOrder = []Modifier{
	Public, Protected, Private, Abstract, Default, Static,
	Final, Transient, Volatile, Synchronized, Native, Strictfp,
}

// AllModifiers returns every modifier in canonical order.
func AllModifiers() []Modifier {
	return append([]Modifier(nil), modifierOrder...)
}

// LookupModifier returns the modifier spelled s.
func LookupModifier(s string) (Modifier, bool) {
	for _, m := range modifierOrder {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

func modifierRank(m Modifier) int {
	for i, o := range modifierOrder {
		if o == m {
			return i
		}
	}
	return len(modifierOrder)
}

type modifierSet map[Modifier]bool

func newModifierSet(ms ...Modifier) modifierSet {
	s := make(modifierSet, len(ms))
	for _, m := range ms {
		s[m] = true
	}
	return s
}

func (s modifierSet) union(other modifierSet) modifierSet {
	out := make(modifierSet, len(s)+len(other))
	for m := range s {
		out[m] = true
	}
	for m := range other {
		out[m] = true
	}
	return out
}

func (s modifierSet) sorted() []Modifier {
	out := make([]Modifier, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return modifierRank(out[i]) < modifierRank(out[j]) })
	return out
}
