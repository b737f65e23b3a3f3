package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"smtresolve/internal/core"
	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

const defaultGraphHTTPTimeout = 30 * time.Second

// KnowledgeGraphHTTPAdapter fetches package metadata from a remote
// knowledge-graph service, one request per (package[, version]) lookup.
// Unlike the file adapter it holds no catalog-wide cache; callers that
// need repeated lookups across a run should wrap it or prefer the file
// adapter for static catalogs. A version-level lookup answered with 404
// returns a CodeNotFound error naming the request path, not
// types.ErrUnknownVersion.
type KnowledgeGraphHTTPAdapter struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewKnowledgeGraphHTTPAdapter(baseURL, token string) *KnowledgeGraphHTTPAdapter {
	return &KnowledgeGraphHTTPAdapter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: defaultGraphHTTPTimeout},
	}
}

type graphVersionsResponse struct {
	Versions []string `json:"versions"`
}

func (a *KnowledgeGraphHTTPAdapter) VersionsOf(name string) ([]string, error) {
	var body graphVersionsResponse
	if err := a.getJSON(context.Background(), fmt.Sprintf("/packages/%s/versions", name), &body); err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			return nil, types.ErrUnknownPackage(name)
		}
		return nil, err
	}
	if len(body.Versions) == 0 {
		return nil, types.ErrUnknownPackage(name)
	}
	return core.SortVersionsDescending(body.Versions), nil
}

func (a *KnowledgeGraphHTTPAdapter) DependenciesOf(name, version string) ([]types.Requirement, error) {
	var entry types.GraphPackageVersion
	if err := a.getJSON(context.Background(), fmt.Sprintf("/packages/%s/versions/%s", name, version), &entry); err != nil {
		return nil, err
	}
	deps := make([]types.Requirement, 0, len(entry.Dependencies))
	for _, clause := range entry.Dependencies {
		req, err := core.ParseRequirementLine(clause)
		if err != nil {
			return nil, err
		}
		deps = append(deps, req)
	}
	return deps, nil
}

func (a *KnowledgeGraphHTTPAdapter) InterpreterRangeOf(name, version string) (types.VersionRange, error) {
	var entry types.GraphPackageVersion
	if err := a.getJSON(context.Background(), fmt.Sprintf("/packages/%s/versions/%s", name, version), &entry); err != nil {
		return types.VersionRange{}, err
	}
	return core.ParsePredicates(entry.InterpreterRange)
}

func (a *KnowledgeGraphHTTPAdapter) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+path, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build knowledge graph request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("knowledge graph request failed").
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("knowledge graph entry not found: " + path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("knowledge graph request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid knowledge graph response").
			WithCause(err)
	}
	return nil
}

var _ ports.KnowledgeGraphPort = (*KnowledgeGraphHTTPAdapter)(nil)
