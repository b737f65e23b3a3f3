package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crillab/gophersat/solver"

	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

// EncodeOptions carries the optional soft-clause preference flags.
// When neither is set, the formula is purely hard-constraint.
type EncodeOptions struct {
	PreferNewest     bool
	MinimizePackages bool
}

// Formula is the boolean/pseudo-boolean encoding of one resolution:
// one variable per candidate PackageVersion, at-most-one per package,
// direct-requirement witnesses, and dependency implications, plus an
// optional weighted cost function.
type Formula struct {
	VarCount    int
	Clauses     [][]int
	VarKey      map[int]candidateRef
	NameToID    map[string]map[string]int
	PackageVars map[string][]int // newest-first, for model extraction and cost weighting
	CostLits    []solver.Lit
	CostWeights []int
	// EmptyCauses are direct Requirements whose disjunction had no
	// candidates at all; the encoder asserts the reserved false variable
	// for each, making F unsatisfiable, and the solver driver surfaces
	// them as the unsat cause.
	EmptyCauses []types.Requirement
}

type candidateRef struct {
	Name    string
	Version string
}

// falseVar is a reserved variable forced false by a unit clause; any
// empty disjunction asserts falseVar instead.
const falseVarName = "__false__"

// EncodeFormula builds F over the candidate universe U.
// Variables are allocated in the fixed order packages sorted by name,
// versions in descending order, so that textual dumps are reproducible
// regardless of map iteration order.
func EncodeFormula(graph ports.KnowledgeGraphPort, universe types.CandidateUniverse, requirements []types.Requirement, opts EncodeOptions) (*Formula, error) {
	cache := newVersionCache()
	f := &Formula{
		VarKey:      map[int]candidateRef{},
		NameToID:    map[string]map[string]int{},
		PackageVars: map[string][]int{},
	}

	nextID := 0
	alloc := func() int {
		nextID++
		return nextID
	}

	falseVar := alloc() // id 1, reserved
	f.Clauses = append(f.Clauses, []int{-falseVar})

	packages := append([]string(nil), universe.Packages()...)
	sort.Strings(packages)
	for _, name := range packages {
		ordered := cache.sortDescending(universe.VersionsOf(name))
		ids := make([]int, 0, len(ordered))
		for _, version := range ordered {
			id := alloc()
			ids = append(ids, id)
			f.VarKey[id] = candidateRef{Name: name, Version: version}
			if f.NameToID[name] == nil {
				f.NameToID[name] = map[string]int{}
			}
			f.NameToID[name][version] = id
		}
		f.PackageVars[name] = ids
		atMostOne(f, ids)
	}
	f.VarCount = nextID

	for _, req := range requirements {
		ids, err := literalsFor(f, cache, req.Package, req.Range)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			f.Clauses = append(f.Clauses, []int{falseVar})
			f.EmptyCauses = append(f.EmptyCauses, req)
			continue
		}
		f.Clauses = append(f.Clauses, ids)
	}

	for _, name := range packages {
		for _, id := range f.PackageVars[name] {
			ref := f.VarKey[id]
			deps, err := graph.DependenciesOf(ref.Name, ref.Version)
			if err != nil {
				return nil, err
			}
			for _, dep := range deps {
				candidates, err := literalsFor(f, cache, dep.Package, dep.Range)
				if err != nil {
					return nil, err
				}
				if len(candidates) == 0 {
					f.Clauses = append(f.Clauses, []int{-id})
					continue
				}
				clause := append([]int{-id}, candidates...)
				f.Clauses = append(f.Clauses, clause)
			}
		}
	}

	f.CostLits, f.CostWeights = buildCostFunction(f, opts)
	return f, nil
}

// atMostOne asserts that at most one of ids is true, as pairwise
// mutual-exclusion clauses.
func atMostOne(f *Formula, ids []int) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			f.Clauses = append(f.Clauses, []int{-ids[i], -ids[j]})
		}
	}
}

// literalsFor returns the variable IDs of every version of name already
// allocated in the formula that satisfies r.
func literalsFor(f *Formula, cache *versionCache, name string, r types.VersionRange) ([]int, error) {
	versionIDs, ok := f.NameToID[name]
	if !ok {
		return nil, nil
	}
	var out []int
	for version, id := range versionIDs {
		ok, err := cache.contains(version, r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out, nil
}

// buildCostFunction translates the optional preference flags into a
// weighted literal list for the solver's optimization pass. The solver
// charges a listed literal's weight when that literal is true, so:
//   - prefer-newest lists each version's negative literal, weighted by
//     recency rank, so leaving a newer version unselected is penalized
//     more than leaving an older one unselected;
//   - minimize-packages lists each version's positive literal with a
//     flat weight, so selecting any version is penalized.
func buildCostFunction(f *Formula, opts EncodeOptions) ([]solver.Lit, []int) {
	var lits []solver.Lit
	var weights []int
	if opts.PreferNewest {
		for _, ids := range f.PackageVars {
			n := len(ids)
			for i, id := range ids {
				lits = append(lits, solver.IntToLit(int32(-id))) //nolint:gosec // id bounded by candidate count
				weights = append(weights, n-i)
			}
		}
	}
	if opts.MinimizePackages {
		for id := 2; id <= f.VarCount; id++ { // skip the reserved falseVar
			lits = append(lits, solver.IntToLit(int32(id))) //nolint:gosec // id bounded by candidate count
			weights = append(weights, 1)
		}
	}
	return lits, weights
}

// Dump renders the formula as an annotated DIMACS-like text for
// diagnostic replay.
func (f *Formula) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", f.VarCount, len(f.Clauses))
	ids := make([]int, 0, len(f.VarKey))
	for id := range f.VarKey {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		ref := f.VarKey[id]
		fmt.Fprintf(&b, "c %d %s==%s\n", id, ref.Name, ref.Version)
	}
	for _, clause := range f.Clauses {
		parts := make([]string, 0, len(clause)+1)
		for _, lit := range clause {
			parts = append(parts, fmt.Sprintf("%d", lit))
		}
		parts = append(parts, "0")
		fmt.Fprintln(&b, strings.Join(parts, " "))
	}
	return b.String()
}
