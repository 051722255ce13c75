package decl

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/poet"
)

// maxSuggestionDistance bounds how far a typo may be from a modifier and
// still get a suggestion.
const maxSuggestionDistance = 3

func parseModifiers(names []string) ([]poet.Modifier, error) {
	out := make([]poet.Modifier, 0, len(names))
	for _, name := range names {
		m, err := parseModifier(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func parseModifier(name string) (poet.Modifier, error) {
	if m, ok := poet.LookupModifier(strings.ToLower(strings.TrimSpace(name))); ok {
		return m, nil
	}
	err := errors.NewConfigurationError("unknown modifier %q", name)
	if closest, ok := closestModifier(name); ok {
		err = errors.WithHintf(err, "did you mean %q?", closest)
	}
	return "", err
}

func closestModifier(name string) (poet.Modifier, bool) {
	best, bestDist := poet.Modifier(""), maxSuggestionDistance+1
	for _, m := range poet.AllModifiers() {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), string(m)); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, best != ""
}
