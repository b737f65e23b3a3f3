package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"smtresolve/internal/ports"
)

// ManifestFileAdapter reads the manifest text blob from a local path.
type ManifestFileAdapter struct {
	Path string
}

func NewManifestFileAdapter(path string) *ManifestFileAdapter {
	return &ManifestFileAdapter{Path: path}
}

func (a *ManifestFileAdapter) Read() (string, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	return string(data), nil
}

var _ ports.ManifestReaderPort = (*ManifestFileAdapter)(nil)
