package core

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"smtresolve/internal/types"
)

type fakeGraph struct {
	versions map[string][]string
	deps     map[string][]types.Requirement
	interp   map[string]types.VersionRange
}

func (g *fakeGraph) VersionsOf(name string) ([]string, error) {
	v, ok := g.versions[name]
	if !ok {
		return nil, types.ErrUnknownPackage(name)
	}
	return v, nil
}

func (g *fakeGraph) DependenciesOf(name, version string) ([]types.Requirement, error) {
	return g.deps[name+"=="+version], nil
}

func (g *fakeGraph) InterpreterRangeOf(name, version string) (types.VersionRange, error) {
	if r, ok := g.interp[name+"=="+version]; ok {
		return r, nil
	}
	return types.VersionRange{}, nil
}

func TestBuildCandidateUniverseTransitive(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{
			"requests": {"2.31.0", "2.25.0"},
			"urllib3":  {"1.26.0", "2.0.0"},
		},
		deps: map[string][]types.Requirement{
			"requests==2.31.0": {{Package: "urllib3", Range: types.VersionRange{Predicates: []string{"<2.0.0"}}}},
			"requests==2.25.0": {{Package: "urllib3", Range: types.VersionRange{Predicates: []string{"<2.0.0"}}}},
		},
	}
	requirements := []types.Requirement{{Package: "requests", Range: types.VersionRange{}}}

	universe, emptyCauses, err := BuildCandidateUniverse(graph, requirements)
	require.NoError(t, err)
	require.Empty(t, emptyCauses)
	require.True(t, universe.Contains("requests", "2.31.0"))
	require.True(t, universe.Contains("urllib3", "1.26.0"))
	require.False(t, universe.Contains("urllib3", "2.0.0"))
}

func TestBuildCandidateUniverseRecordsEmptyCause(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{"flask": {"1.0.0"}},
	}
	requirements := []types.Requirement{
		{Package: "flask", Range: types.VersionRange{Predicates: []string{">=2.0.0"}}},
	}

	universe, emptyCauses, err := BuildCandidateUniverse(graph, requirements)
	require.NoError(t, err)
	require.Equal(t, 0, universe.Len())
	require.Len(t, emptyCauses, 1)
	require.Equal(t, "flask", emptyCauses[0].Package)
}

func TestBuildCandidateUniverseToleratesCycles(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{
			"a": {"1.0.0"},
			"b": {"1.0.0"},
		},
		deps: map[string][]types.Requirement{
			"a==1.0.0": {{Package: "b", Range: types.VersionRange{}}},
			"b==1.0.0": {{Package: "a", Range: types.VersionRange{}}},
		},
	}
	requirements := []types.Requirement{{Package: "a", Range: types.VersionRange{}}}

	universe, emptyCauses, err := BuildCandidateUniverse(graph, requirements)
	require.NoError(t, err)
	require.Empty(t, emptyCauses)
	require.Equal(t, 2, universe.Len())
	names := universe.Packages()
	sort.Strings(names)
	require.Equal(t, []string{"a", "b"}, names)
}
