package imports

import (
	"strconv"
	"strings"

	"github.com/teranos/poet/errors"
)

type policyMode int

const (
	modeDisabled policyMode = iota
	modeAlways
	modeThreshold
)

// WildcardPolicy is the file-wide rule for collapsing a namespace into a
// wildcard import. The zero value is disabled.
type WildcardPolicy struct {
	mode      policyMode
	threshold int
}

// WildcardDisabled never collapses a namespace on its own.
var WildcardDisabled = WildcardPolicy{}

// WildcardAlways collapses every referenced namespace.
var WildcardAlways = WildcardPolicy{mode: modeAlways}

// WildcardThreshold collapses a namespace once n distinct names are referenced.
func WildcardThreshold(n int) (WildcardPolicy, error) {
	if n < 1 {
		return WildcardDisabled, errors.WithHint(
			errors.NewConfigurationError("wildcard threshold %d", n),
			"use a threshold of at least 1, or the \"always\" policy")
	}
	return WildcardPolicy{mode: modeThreshold, threshold: n}, nil
}

// ParseWildcardPolicy reads "disabled", "always", or a positive integer.
// The original numeric encoding (-1 disabled, 0 always) is accepted too.
func ParseWildcardPolicy(s string) (WildcardPolicy, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "disabled", "none", "off":
		return WildcardDisabled, nil
	case "always":
		return WildcardAlways, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil {
			return WildcardDisabled, errors.NewConfigurationError("unknown wildcard policy %q", s)
		}
		switch {
		case n < 0:
			return WildcardDisabled, nil
		case n == 0:
			return WildcardAlways, nil
		}
		return WildcardThreshold(n)
	}
}

// Enabled reports whether the policy can ever choose the wildcard form.
func (p WildcardPolicy) Enabled() bool {
	return p.mode != modeDisabled
}

// Meets reports whether a namespace with count distinct references collapses.
func (p WildcardPolicy) Meets(count int) bool {
	switch p.mode {
	case modeAlways:
		return count > 0
	case modeThreshold:
		return count >= p.threshold
	default:
		return false
	}
}

// Threshold returns the numeric form: -1 disabled, 0 always, N otherwise.
func (p WildcardPolicy) Threshold() int {
	switch p.mode {
	case modeAlways:
		return 0
	case modeThreshold:
		return p.threshold
	default:
		return -1
	}
}

func (p WildcardPolicy) String() string {
	switch p.mode {
	case modeAlways:
		return "always"
	case modeThreshold:
		return strconv.Itoa(p.threshold)
	default:
		return "disabled"
	}
}
