package core

import (
	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

// SelectInterpreter merges the interpreter range declared by every
// resolved package version and picks the newest catalog interpreter
// that satisfies the merged range. Packages are visited in
// deterministic (name-sorted) order and the live candidate set is
// narrowed one package at a time, so that if narrowing ever empties the
// set, the package that caused it can be named precisely; if the set is
// already empty before any narrowing, the catalog itself has nothing to
// offer regardless of package constraints.
func SelectInterpreter(graph ports.KnowledgeGraphPort, catalog ports.InterpreterCatalogPort, model types.Model) (string, error) {
	cache := newVersionCache()

	versions, err := catalog.Versions()
	if err != nil {
		return "", err
	}
	versions = cache.sortDescending(versions)
	candidates := append([]string(nil), versions...)
	if len(candidates) == 0 {
		return "", types.ErrNoAvailableInterpreter()
	}

	for _, name := range model.Packages() {
		version := model[name]
		r, err := graph.InterpreterRangeOf(name, version)
		if err != nil {
			return "", err
		}
		if r.IsUniversal() {
			continue
		}
		narrowed, err := filterSatisfying(cache, candidates, r)
		if err != nil {
			return "", err
		}
		if len(narrowed) == 0 {
			return "", types.ErrInterpreterIncompatible(name)
		}
		candidates = narrowed
	}

	return candidates[0], nil
}

func filterSatisfying(cache *versionCache, versions []string, r types.VersionRange) ([]string, error) {
	var out []string
	for _, v := range versions {
		ok, err := cache.contains(v, r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}
