package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"smtresolve/internal/ports"
)

// InterpreterCatalogFileAdapter reads a flat list of available
// interpreter versions from a local JSON or YAML document.
type InterpreterCatalogFileAdapter struct {
	Path string

	loaded   bool
	versions []string
}

func NewInterpreterCatalogFileAdapter(path string) *InterpreterCatalogFileAdapter {
	return &InterpreterCatalogFileAdapter{Path: path}
}

type interpreterCatalogDoc struct {
	Versions []string `json:"versions" yaml:"versions"`
}

func (a *InterpreterCatalogFileAdapter) Versions() ([]string, error) {
	if a.loaded {
		return a.versions, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("interpreter catalog file not found").
			WithCause(err)
	}
	var doc interpreterCatalogDoc
	if strings.EqualFold(filepath.Ext(a.Path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid interpreter catalog format").
			WithCause(err)
	}
	a.versions = doc.Versions
	a.loaded = true
	return a.versions, nil
}

var _ ports.InterpreterCatalogPort = (*InterpreterCatalogFileAdapter)(nil)
