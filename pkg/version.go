package tagging

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/coreos/go-semver/semver"
	modsemver "golang.org/x/mod/semver"
)

// IncrementKind selects which version component is bumped.
type IncrementKind string

const (
	Major IncrementKind = "major"
	Minor IncrementKind = "minor"
	Patch IncrementKind = "patch"
)

var (
	// ErrInvalidIncrementKind is returned for kinds other than major, minor or patch.
	ErrInvalidIncrementKind = errors.New("invalid version type")
	// ErrMalformedVersion is returned by a strict Incrementer for input that is
	// not a plain MAJOR.MINOR.PATCH version.
	ErrMalformedVersion = errors.New("malformed version")
	// ErrVersionOverflow is returned when the component to bump is already
	// the largest representable value.
	ErrVersionOverflow = errors.New("version component out of range")
)

// ParseIncrementKind converts a command line value into an IncrementKind.
func ParseIncrementKind(s string) (IncrementKind, error) {
	kind := IncrementKind(strings.ToLower(strings.TrimSpace(s)))
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate reports ErrInvalidIncrementKind for unknown kinds.
func (k IncrementKind) Validate() error {
	switch k {
	case Major, Minor, Patch:
		return nil
	}
	return fmt.Errorf("%w: %q (expected major, minor or patch)", ErrInvalidIncrementKind, string(k))
}

// Incrementer computes the next version from a current one.
//
// By default malformed input is normalized: every missing, non-numeric or
// negative component counts as 0, so "" becomes 0.0.0 and "2" becomes 2.0.0.
// With Strict set, anything but a plain MAJOR.MINOR.PATCH string is rejected
// with ErrMalformedVersion.
type Incrementer struct {
	Strict bool
}

// Increase bumps current by kind using a lenient Incrementer.
func Increase(current string, kind IncrementKind) (string, error) {
	return Incrementer{}.Increase(current, kind)
}

// Increase returns current bumped by kind, formatted as major.minor.patch.
// Lower order components are reset to zero. Components above math.MaxInt64
// are malformed and read as 0 by a lenient Incrementer.
func (i Incrementer) Increase(current string, kind IncrementKind) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}

	var (
		v   semver.Version
		err error
	)
	if i.Strict {
		v, err = parseStrict(current)
		if err != nil {
			return "", err
		}
	} else {
		v = parseLenient(current)
	}

	if component(v, kind) == math.MaxInt64 {
		return "", fmt.Errorf("%w: cannot bump %s of %q", ErrVersionOverflow, kind, current)
	}

	switch kind {
	case Major:
		v.BumpMajor()
	case Minor:
		v.BumpMinor()
	case Patch:
		v.BumpPatch()
	}
	return v.String(), nil
}

func component(v semver.Version, kind IncrementKind) int64 {
	switch kind {
	case Major:
		return v.Major
	case Minor:
		return v.Minor
	}
	return v.Patch
}

// parseLenient splits on "." and reads the first three fields. It never fails.
func parseLenient(version string) semver.Version {
	var parts [3]int64
	for idx, field := range strings.SplitN(strings.TrimSpace(version), ".", 4) {
		if idx >= len(parts) {
			break
		}
		n, err := strconv.ParseUint(strings.TrimSpace(field), 10, 63)
		if err != nil {
			continue
		}
		parts[idx] = int64(n)
	}
	return semver.Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

func parseStrict(version string) (semver.Version, error) {
	canonical := "v" + version
	if !modsemver.IsValid(canonical) ||
		modsemver.Canonical(canonical) != canonical ||
		modsemver.Prerelease(canonical) != "" {
		return semver.Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%w: %q: %v", ErrMalformedVersion, version, err)
	}
	return *v, nil
}
