package core

import (
	"context"

	"github.com/crillab/gophersat/solver"

	"smtresolve/internal/types"
)

// SolveResult is the outcome of one solver invocation: exactly one of
// Model or Proof is populated, depending on satisfiability.
type SolveResult struct {
	Model types.Model
	Proof *types.UnsatProof
}

// Solve runs the encoded formula through the SAT backend and projects
// the result back into package-version form. ctx governs the wall-clock
// budget for the solve; an expired or canceled context before the
// solver returns is reported as ErrIndeterminate rather than guessed at
// as either sat or unsat.
func Solve(ctx context.Context, f *Formula) (SolveResult, error) {
	if len(f.EmptyCauses) > 0 {
		proof := types.UnsatProof{
			Causes: f.EmptyCauses,
			Text:   emptyCauseProofText(f.EmptyCauses),
		}
		return SolveResult{Proof: &proof}, types.ErrUnsat(proof)
	}
	if ctx.Err() != nil {
		return SolveResult{}, types.ErrIndeterminate(ctx.Err().Error())
	}

	type outcome struct {
		sat   bool
		model []bool
		cost  int
	}
	done := make(chan outcome, 1)

	problem := solver.ParseSliceNb(f.Clauses, f.VarCount)
	problem.SetCostFunc(f.CostLits, f.CostWeights)
	sat := solver.New(problem)

	go func() {
		cost := sat.Minimize()
		res := outcome{sat: cost >= 0, cost: cost}
		if res.sat {
			res.model = sat.Model()
		}
		done <- res
	}()

	select {
	case <-ctx.Done():
		return SolveResult{}, types.ErrIndeterminate(ctx.Err().Error())
	case res := <-done:
		if !res.sat {
			proof := types.UnsatProof{Text: "solver reported unsatisfiable after full dependency closure"}
			return SolveResult{Proof: &proof}, types.ErrUnsat(proof)
		}
		model := make(types.Model, len(f.PackageVars))
		for id, ref := range f.VarKey {
			if id-1 < 0 || id-1 >= len(res.model) {
				continue
			}
			if res.model[id-1] {
				model[ref.Name] = ref.Version
			}
		}
		return SolveResult{Model: model}, nil
	}
}

func emptyCauseProofText(causes []types.Requirement) string {
	text := "no candidate version satisfies the following direct requirement(s):\n"
	for _, c := range causes {
		text += "  " + types.ErrEmptyCandidate(c).Error() + "\n"
	}
	return text
}
