package core

import (
	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

// candidatesSatisfying returns the versions of name known to the graph
// that satisfy r, in whatever order the graph reports them. Surfaces
// types.ErrUnknownPackage via the adapter when name isn't in the graph.
func candidatesSatisfying(graph ports.KnowledgeGraphPort, cache *versionCache, name string, r types.VersionRange) ([]string, error) {
	versions, err := graph.VersionsOf(name)
	if err != nil {
		return nil, err
	}
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

// BuildCandidateUniverse computes U, the finite candidate universe
// reachable from the direct Requirements under the knowledge graph's
// declared dependencies. Membership is keyed by
// PackageVersion identity, so cycles in the dependency relation
// terminate naturally: a (name, version) pair is only ever enqueued the
// first time it's added.
//
// A direct Requirement admitting no known version is not an error here
// — it is returned in the second result for the caller to report as an
// unsat cause. EncodeFormula detects the same empty disjunction on its
// own and asserts a contradictory clause for it.
func BuildCandidateUniverse(graph ports.KnowledgeGraphPort, requirements []types.Requirement) (types.CandidateUniverse, []types.Requirement, error) {
	universe := types.NewCandidateUniverse()
	cache := newVersionCache()
	var emptyCauses []types.Requirement

	type pending struct{ name, version string }
	var queue []pending

	for _, req := range requirements {
		versions, err := candidatesSatisfying(graph, cache, req.Package, req.Range)
		if err != nil {
			return universe, nil, err
		}
		if len(versions) == 0 {
			emptyCauses = append(emptyCauses, req)
			continue
		}
		for _, v := range versions {
			if universe.Add(req.Package, v) {
				queue = append(queue, pending{req.Package, v})
			}
		}
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		deps, err := graph.DependenciesOf(item.name, item.version)
		if err != nil {
			return universe, nil, err
		}
		for _, dep := range deps {
			versions, err := candidatesSatisfying(graph, cache, dep.Package, dep.Range)
			if err != nil {
				return universe, nil, err
			}
			for _, v := range versions {
				if universe.Add(dep.Package, v) {
					queue = append(queue, pending{dep.Package, v})
				}
			}
		}
	}

	return universe, emptyCauses, nil
}
