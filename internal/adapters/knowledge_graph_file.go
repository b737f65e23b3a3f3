package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"smtresolve/internal/core"
	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

// KnowledgeGraphFileAdapter serves package/version/dependency/interpreter
// metadata from a single JSON or YAML document, loaded once and cached
// for the lifetime of the adapter.
type KnowledgeGraphFileAdapter struct {
	Path string

	loaded   bool
	versions map[string][]string
	entries  map[string]map[string]types.GraphPackageVersion
}

func NewKnowledgeGraphFileAdapter(path string) *KnowledgeGraphFileAdapter {
	return &KnowledgeGraphFileAdapter{Path: path}
}

func (a *KnowledgeGraphFileAdapter) VersionsOf(name string) ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	versions, ok := a.versions[name]
	if !ok {
		return nil, types.ErrUnknownPackage(name)
	}
	return core.SortVersionsDescending(versions), nil
}

func (a *KnowledgeGraphFileAdapter) DependenciesOf(name, version string) ([]types.Requirement, error) {
	entry, err := a.entry(name, version)
	if err != nil {
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

func (a *KnowledgeGraphFileAdapter) InterpreterRangeOf(name, version string) (types.VersionRange, error) {
	entry, err := a.entry(name, version)
	if err != nil {
		return types.VersionRange{}, err
	}
	return core.ParsePredicates(entry.InterpreterRange)
}

func (a *KnowledgeGraphFileAdapter) entry(name, version string) (types.GraphPackageVersion, error) {
	if err := a.load(); err != nil {
		return types.GraphPackageVersion{}, err
	}
	byVersion, ok := a.entries[name]
	if !ok {
		return types.GraphPackageVersion{}, types.ErrUnknownPackage(name)
	}
	entry, ok := byVersion[version]
	if !ok {
		return types.GraphPackageVersion{}, types.ErrUnknownVersion(name, version)
	}
	return entry, nil
}

func (a *KnowledgeGraphFileAdapter) load() error {
	if a.loaded {
		return nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("knowledge graph file not found").
			WithCause(err)
	}

	var doc types.GraphDocument
	if strings.EqualFold(filepath.Ext(a.Path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid knowledge graph format").
			WithCause(err)
	}

	a.versions = make(map[string][]string, len(doc.Packages))
	a.entries = make(map[string]map[string]types.GraphPackageVersion, len(doc.Packages))
	for name, versions := range doc.Packages {
		byVersion := make(map[string]types.GraphPackageVersion, len(versions))
		versionList := make([]string, 0, len(versions))
		for _, entry := range versions {
			byVersion[entry.Version] = entry
			versionList = append(versionList, entry.Version)
		}
		a.entries[name] = byVersion
		a.versions[name] = versionList
	}
	a.loaded = true
	return nil
}

var _ ports.KnowledgeGraphPort = (*KnowledgeGraphFileAdapter)(nil)
