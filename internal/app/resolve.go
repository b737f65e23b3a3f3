package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"smtresolve/internal/adapters"
	"smtresolve/internal/core"
	"smtresolve/internal/ports"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	logger := log.Ctx(ctx).With().Str("stage", "resolve").Logger()

	if strings.TrimSpace(req.ManifestPath) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	if strings.TrimSpace(req.GraphPath) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("knowledge graph path is required")
	}
	if strings.TrimSpace(req.CatalogPath) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("interpreter catalog path is required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		req.OutputPath = "install_script.txt"
	}

	manifestReader := adapters.NewManifestFileAdapter(req.ManifestPath)
	graph := newKnowledgeGraph(req.GraphPath, req.GraphToken)
	catalog := adapters.NewInterpreterCatalogFileAdapter(req.CatalogPath)
	output := adapters.NewInstallScriptWriter(req.OutputPath)

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := manifestReader.Read()
	if err != nil {
		return ResolveResult{}, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("read manifest")

	start = time.Now()
	requirements, err := core.ParseManifest(text)
	if err != nil {
		return ResolveResult{}, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Int("requirements", len(requirements)).Msg("parsed manifest")

	start = time.Now()
	universe, emptyCauses, err := core.BuildCandidateUniverse(graph, requirements)
	if err != nil {
		return ResolveResult{}, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Int("candidates", universe.Len()).Msg("built candidate universe")

	start = time.Now()
	formula, err := core.EncodeFormula(graph, universe, requirements, core.EncodeOptions{
		PreferNewest:     req.PreferNewest,
		MinimizePackages: req.MinimizePackages,
	})
	if err != nil {
		return ResolveResult{}, err
	}
	formula.EmptyCauses = append(formula.EmptyCauses, emptyCauses...)
	logger.Debug().Dur("elapsed", time.Since(start)).Int("clauses", len(formula.Clauses)).Msg("encoded formula")

	if req.DumpFormula {
		if err := output.WriteFormulaDump(formula.Dump()); err != nil {
			return ResolveResult{}, err
		}
	}

	start = time.Now()
	result, err := core.Solve(ctx, formula)
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("solved formula")
	if err != nil {
		if result.Proof != nil {
			if writeErr := output.WriteUnsatProof(*result.Proof); writeErr != nil {
				logger.Warn().Err(writeErr).Msg("failed to write unsat proof")
			}
		}
		return ResolveResult{}, err
	}

	start = time.Now()
	interpreter, err := core.SelectInterpreter(graph, catalog, result.Model)
	if err != nil {
		return ResolveResult{}, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Str("interpreter", interpreter).Msg("selected interpreter")

	if err := output.WriteInstallScript(interpreter, result.Model); err != nil {
		return ResolveResult{}, err
	}

	return ResolveResult{
		Interpreter: interpreter,
		Model:       result.Model,
		OutputPath:  req.OutputPath,
	}, nil
}

func newKnowledgeGraph(path, token string) ports.KnowledgeGraphPort {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return adapters.NewKnowledgeGraphHTTPAdapter(path, token)
	}
	return adapters.NewKnowledgeGraphFileAdapter(path)
}
