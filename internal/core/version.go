package core

import (
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"smtresolve/internal/types"
)

// versionCache memoizes parsed PEP 440 versions and specifiers to avoid
// repeated parsing during constraint evaluation, closure expansion, and
// formula construction, all of which compare the same handful of
// version strings many times over.
type versionCache struct {
	versions map[string]pep440.Version
	specs    map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		versions: map[string]pep440.Version{},
		specs:    map[string]pep440.Specifiers{},
	}
}

func (c *versionCache) version(value string) (pep440.Version, error) {
	if parsed, ok := c.versions[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.versions[value] = parsed
	return parsed, nil
}

func (c *versionCache) specifiers(clause string) (pep440.Specifiers, error) {
	if parsed, ok := c.specs[clause]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(clause)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specs[clause] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings. Returns 0
// on parse errors; callers that need to surface a parse failure should
// call version() directly first.
func (c *versionCache) compare(a, b string) int {
	va, err := c.version(a)
	if err != nil {
		return 0
	}
	vb, err := c.version(b)
	if err != nil {
		return 0
	}
	return va.Compare(vb)
}

// contains reports whether version satisfies range, using the cache for
// both the range's compiled specifier and the parsed version.
func (c *versionCache) contains(version string, r types.VersionRange) (bool, error) {
	if r.IsUniversal() {
		if _, err := c.version(version); err != nil {
			return false, err
		}
		return true, nil
	}
	v, err := c.version(version)
	if err != nil {
		return false, err
	}
	spec, err := c.specifiers(r.Specifier())
	if err != nil {
		return false, err
	}
	return spec.Check(v), nil
}

// SortVersionsDescending orders versions newest-first using PEP 440
// comparison. Exported for knowledge-graph adapters, which must honor
// KnowledgeGraphPort.VersionsOf's documented newest-first contract on
// their own, without reaching into core's private version cache.
func SortVersionsDescending(versions []string) []string {
	return newVersionCache().sortDescending(versions)
}

// sortDescending returns a copy of versions ordered newest-first. Any
// comparison involving an unparseable entry falls back to reverse
// lexicographic string order, so one bad entry in a large catalog
// doesn't abort the whole ordering.
func (c *versionCache) sortDescending(versions []string) []string {
	ordered := append([]string(nil), versions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return c.newerThan(ordered[i], ordered[j])
	})
	return ordered
}

// newerThan reports whether a should sort before b in descending
// (newest-first) order. Unparseable versions fall back to reverse
// lexicographic order so one bad entry doesn't abort the sort.
func (c *versionCache) newerThan(a, b string) bool {
	_, errA := c.version(a)
	_, errB := c.version(b)
	if errA != nil || errB != nil {
		return a > b
	}
	return c.compare(a, b) > 0
}
