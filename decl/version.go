package decl

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/poet/errors"
)

// SupportedVersions is the range of document versions this package reads.
const SupportedVersions = ">= 1.0, < 2.0"

var supported = semver.MustParse("1.0.0")

func checkVersion(v string) error {
	if v == "" {
		return errors.WithHintf(
			errors.NewConfigurationError("declaration document has no version"),
			"add version: %q", supported.Original())
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return errors.NewConfigurationError("invalid document version %q: %v", v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.AssertionFailedf("bad version constraint: %v", err)
	}
	if !constraint.Check(version) {
		return errors.WithHintf(
			errors.NewConfigurationError("document version %s is not supported", v),
			"supported versions: %s", SupportedVersions)
	}
	return nil
}
