package core

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"smtresolve/internal/types"
)

// ParseManifest turns a manifest text blob into an
// ordered list of direct Requirements. Each non-blank, non-comment line
// is "name ((<op> version)(,\s*<op> version)*)?"; a bare name parses as
// the universal range. Duplicate package names across separate lines
// are merged by intersection.
func ParseManifest(text string) ([]types.Requirement, error) {
	order := []string{}
	byName := map[string]types.Requirement{}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := ParseRequirementLine(line)
		if err != nil {
			return nil, err
		}
		existing, ok := byName[req.Package]
		if !ok {
			byName[req.Package] = req
			order = append(order, req.Package)
			continue
		}
		existing.Range = existing.Range.Intersect(req.Range)
		byName[req.Package] = existing
	}

	out := make([]types.Requirement, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out, nil
}

// ParseRequirementLine parses one "name ((<op> version)(,\s*<op> version)*)?"
// line into a Requirement. The package name is everything before the
// first recognized operator token; everything from that token onward is
// a comma-separated list of "<op><version>" clauses, ANDed together.
// Knowledge-graph adapters reuse this to parse declared-dependency
// strings, which share the manifest's grammar.
func ParseRequirementLine(line string) (types.Requirement, error) {
	opIdx := -1
	for _, tok := range types.OpTokens {
		idx := strings.Index(line, string(tok))
		if idx < 0 {
			continue
		}
		if opIdx == -1 || idx < opIdx {
			opIdx = idx
		}
	}

	if opIdx == -1 {
		name := strings.TrimSpace(line)
		if name == "" {
			return types.Requirement{}, types.ErrMalformedManifest("empty requirement line")
		}
		return types.Requirement{Package: name, Range: types.VersionRange{}}, nil
	}

	name := strings.TrimSpace(line[:opIdx])
	if name == "" {
		return types.Requirement{}, types.ErrMalformedManifest("missing package name in: " + line)
	}

	predicates, err := parseClauses(line[opIdx:])
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{Package: name, Range: types.VersionRange{Predicates: predicates}}, nil
}

// parseClauses parses a comma-separated run of "<op><version>" tokens
// (the part of the line from the first operator onward) into normalized
// predicate strings.
func parseClauses(rest string) ([]string, error) {
	var predicates []string
	for _, clause := range strings.Split(rest, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, types.ErrMalformedManifest("empty clause in: " + rest)
		}
		predicate, err := parseClause(clause)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate)
	}
	return predicates, nil
}

// ParsePredicates compiles a list of raw "<op><version>" clause strings
// (no package name, as used for an interpreter range declaration) into
// a VersionRange. An empty list is the universal range.
func ParsePredicates(clauses []string) (types.VersionRange, error) {
	predicates := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		predicate, err := parseClause(strings.TrimSpace(clause))
		if err != nil {
			return types.VersionRange{}, err
		}
		predicates = append(predicates, predicate)
	}
	return types.VersionRange{Predicates: predicates}, nil
}

func parseClause(clause string) (string, error) {
	for _, tok := range types.OpTokens {
		if !strings.HasPrefix(clause, string(tok)) {
			continue
		}
		version := strings.TrimSpace(clause[len(tok):])
		if version == "" {
			return "", types.ErrMalformedManifest("missing version in clause: " + clause)
		}
		if _, err := pep440.Parse(version); err != nil {
			return "", types.ErrMalformedManifest("unparseable version: " + version)
		}
		return string(tok) + version, nil
	}
	return "", types.ErrMalformedManifest("unrecognized operator in clause: " + clause)
}
