package app

import "time"

// ResolveRequest carries everything one resolution run needs: where to
// read the manifest and knowledge graph from, where to write results,
// and the optional solver preferences and diagnostics.
type ResolveRequest struct {
	ManifestPath string
	GraphPath    string // local file path, or an http(s):// URL
	GraphToken   string // bearer token, only used when GraphPath is a URL
	CatalogPath  string
	OutputPath   string

	PreferNewest     bool
	MinimizePackages bool
	DumpFormula      bool

	// Timeout bounds the solver's wall-clock budget. Zero means no
	// deadline is imposed beyond the caller's own context.
	Timeout time.Duration
}

// ResolveResult summarizes a successful resolution.
type ResolveResult struct {
	Interpreter string
	Model       map[string]string
	OutputPath  string
}
