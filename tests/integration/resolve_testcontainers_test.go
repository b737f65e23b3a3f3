//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"smtresolve/internal/app"
)

// TestE2EResolveAgainstContainerizedKnowledgeGraph runs the resolve
// pipeline against a real HTTP server for the knowledge graph, serving
// requests from a separate container rather than an in-process
// httptest server, so the HTTP adapter is exercised over a real
// socket with real latency.
func TestE2EResolveAgainstContainerizedKnowledgeGraph(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := context.Background()
	endpoint, cleanup := startKnowledgeGraphServer(ctx, t)
	t.Cleanup(cleanup)

	root := t.TempDir()
	manifestPath := filepath.Join(root, "requirements.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("requests>=2.25.0\n"), 0o644))

	catalogPath := filepath.Join(root, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`{"versions":["3.12.0","3.11.0","3.9.0"]}`), 0o644))

	outputPath := filepath.Join(root, "install_script.txt")

	service := app.NewService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ManifestPath: manifestPath,
		GraphPath:    endpoint,
		CatalogPath:  catalogPath,
		OutputPath:   outputPath,
		PreferNewest: true,
		Timeout:      30 * time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, "3.12.0", result.Interpreter)
	require.Equal(t, "2.31.0", result.Model["requests"])
	require.Equal(t, "1.26.0", result.Model["urllib3"])

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "# interpreter pin\ninterpreter == 3.12.0\nrequests == 2.31.0\nurllib3 == 1.26.0\n", string(data))
}

func startKnowledgeGraphServer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8090/tcp"},
		Cmd:          []string{"python", "-c", knowledgeGraphServerScript},
		WaitingFor:   wait.ForListeningPort("8090/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8090/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// knowledgeGraphServerScript serves a small fixed graph: requests depends
// on urllib3 and requires Python >= 3.10; urllib3 has no further
// constraints. Two versions of each package are offered so the solver
// has something to choose between.
const knowledgeGraphServerScript = `
import json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

graph = {
    "requests": [
        {"version": "2.31.0", "dependencies": ["urllib3>=1.26.0"], "interpreter_range": [">=3.10"]},
        {"version": "2.25.0", "dependencies": ["urllib3>=1.21.1"]},
    ],
    "urllib3": [
        {"version": "1.26.0", "dependencies": []},
        {"version": "1.25.0", "dependencies": []},
    ],
}

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        parts = [p for p in self.path.split("/") if p]
        if len(parts) == 3 and parts[0] == "packages" and parts[2] == "versions":
            name = parts[1]
            entries = graph.get(name)
            if entries is None:
                self.send_response(404)
                self.end_headers()
                return
            body = json.dumps({"versions": [e["version"] for e in entries]}).encode("utf-8")
            self.send_response(200)
            self.send_header("Content-Type", "application/json")
            self.end_headers()
            self.wfile.write(body)
            return
        if len(parts) == 4 and parts[0] == "packages" and parts[2] == "versions":
            name, version = parts[1], parts[3]
            entries = graph.get(name, [])
            entry = next((e for e in entries if e["version"] == version), None)
            if entry is None:
                self.send_response(404)
                self.end_headers()
                return
            body = json.dumps(entry).encode("utf-8")
            self.send_response(200)
            self.send_header("Content-Type", "application/json")
            self.end_headers()
            self.wfile.write(body)
            return
        self.send_response(404)
        self.end_headers()

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8090), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
