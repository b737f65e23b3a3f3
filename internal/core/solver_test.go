package core

import (
	"context"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"smtresolve/internal/types"
)

func TestSolveSatisfiable(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{
			"flask": {"2.0.0", "1.0.0"},
		},
	}
	universe := types.NewCandidateUniverse()
	universe.Add("flask", "2.0.0")
	universe.Add("flask", "1.0.0")
	requirements := []types.Requirement{{Package: "flask", Range: types.VersionRange{}}}

	f, err := EncodeFormula(graph, universe, requirements, EncodeOptions{PreferNewest: true})
	require.NoError(t, err)

	result, err := Solve(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, result.Model, 1)
	require.Equal(t, "2.0.0", result.Model["flask"])
}

func TestSolveUnsatisfiableConflictingVersions(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{
			"flask": {"1.0.0"},
			"a":     {"1.0.0"},
			"b":     {"1.0.0"},
		},
		deps: map[string][]types.Requirement{
			"a==1.0.0": {{Package: "flask", Range: types.VersionRange{Predicates: []string{">=2.0.0"}}}},
			"b==1.0.0": {{Package: "flask", Range: types.VersionRange{Predicates: []string{"<2.0.0"}}}},
		},
	}
	requirements := []types.Requirement{
		{Package: "a", Range: types.VersionRange{}},
		{Package: "b", Range: types.VersionRange{}},
	}
	universe, emptyCauses, err := BuildCandidateUniverse(graph, requirements)
	require.NoError(t, err)
	require.Empty(t, emptyCauses)

	f, err := EncodeFormula(graph, universe, requirements, EncodeOptions{})
	require.NoError(t, err)

	_, err = Solve(context.Background(), f)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestSolveEmptyCandidateIsUnsat(t *testing.T) {
	graph := &fakeGraph{
		versions: map[string][]string{"flask": {"1.0.0"}},
	}
	requirements := []types.Requirement{
		{Package: "flask", Range: types.VersionRange{Predicates: []string{">=9.0.0"}}},
	}
	universe, emptyCauses, err := BuildCandidateUniverse(graph, requirements)
	require.NoError(t, err)
	require.Len(t, emptyCauses, 1)

	f, err := EncodeFormula(graph, universe, requirements, EncodeOptions{})
	require.NoError(t, err)

	result, err := Solve(context.Background(), f)
	require.Error(t, err)
	require.NotNil(t, result.Proof)
	require.Len(t, result.Proof.Causes, 1)
}

func TestSolveRespectsContextDeadline(t *testing.T) {
	graph := &fakeGraph{versions: map[string][]string{"flask": {"1.0.0"}}}
	universe := types.NewCandidateUniverse()
	universe.Add("flask", "1.0.0")
	requirements := []types.Requirement{{Package: "flask", Range: types.VersionRange{}}}
	f, err := EncodeFormula(graph, universe, requirements, EncodeOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err = Solve(ctx, f)
	require.Error(t, err)
}
