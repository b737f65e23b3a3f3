package types

import (
	"sort"
	"strings"
)

// VersionRange is a conjunction of version predicates. An
// empty VersionRange is the universal range: every version is a member.
// Predicates are kept as raw PEP 440 specifier clauses (e.g. ">=2.25",
// "~=1.4") so that containment checks can be delegated verbatim to the
// PEP 440 specifier engine rather than re-implemented here.
type VersionRange struct {
	Predicates []string
}

// IsUniversal reports whether the range admits every version.
func (r VersionRange) IsUniversal() bool {
	return len(r.Predicates) == 0
}

// Intersect returns the range admitting only versions both ranges admit.
// Because predicates are ANDed, intersection is simple concatenation.
func (r VersionRange) Intersect(other VersionRange) VersionRange {
	if r.IsUniversal() {
		return other
	}
	if other.IsUniversal() {
		return r
	}
	merged := make([]string, 0, len(r.Predicates)+len(other.Predicates))
	merged = append(merged, r.Predicates...)
	merged = append(merged, other.Predicates...)
	return VersionRange{Predicates: merged}
}

// Specifier renders the range as a single comma-joined PEP 440 specifier
// string, suitable for go-pep440-version's Specifiers parser. Returns ""
// for the universal range.
func (r VersionRange) Specifier() string {
	return strings.Join(r.Predicates, ",")
}

func (r VersionRange) String() string {
	if r.IsUniversal() {
		return "*"
	}
	return r.Specifier()
}

// Requirement is a (package-name, VersionRange) constraint,
// originating either from the manifest (direct) or from a package
// version's declared dependencies (transitive).
type Requirement struct {
	Package string
	Range   VersionRange
}

func (r Requirement) String() string {
	if r.Range.IsUniversal() {
		return r.Package
	}
	return r.Package + r.Range.String()
}

// PackageVersion is the atomic unit the solver selects from.
// Version is kept as a raw PEP 440 string rather than a parsed value so
// that knowledge-graph adapters can deserialize it with no custom
// unmarshaling; comparisons go through a versionCache (see version.go).
type PackageVersion struct {
	Name             string
	Version          string
	Dependencies     []Requirement
	InterpreterRange VersionRange
}

// Model is a satisfying assignment projected to selected (package,
// version) pairs: package name -> chosen version string.
type Model map[string]string

// Packages returns the model's package names sorted ascending, for
// deterministic iteration.
func (m Model) Packages() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnsatProof is the structured evidence of infeasibility returned by the
// solver driver on an unsatisfiable instance.
type UnsatProof struct {
	// Causes names the direct Requirements whose disjunction was empty
	// (EmptyCandidate) — the pinpointable cause when a root demand has
	// no candidates at all.
	Causes []Requirement
	// Core is the solver-reported conflicting clause indices, when the
	// underlying solver exposes one. May be empty.
	Core []int
	// Text is an opaque rendering of the above suitable for writing to
	// the unsat-proof sidecar file.
	Text string
}
