package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"smtresolve/internal/ports"
	"smtresolve/internal/types"
)

// InstallScriptWriter writes the pinned install script and its sidecar
// diagnostic artifacts to the filesystem. The unsat proof and formula
// dump are named after the install script path so a single --output
// flag drives every artifact the pipeline can produce.
type InstallScriptWriter struct {
	Path string
}

func NewInstallScriptWriter(path string) *InstallScriptWriter {
	return &InstallScriptWriter{Path: path}
}

func (w *InstallScriptWriter) WriteInstallScript(interpreter string, model types.Model) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# interpreter pin\ninterpreter == %s\n", interpreter)
	for _, name := range model.Packages() {
		fmt.Fprintf(&b, "%s == %s\n", name, model[name])
	}
	return w.write(w.Path, b.String())
}

func (w *InstallScriptWriter) WriteUnsatProof(proof types.UnsatProof) error {
	return w.write(w.Path+".unsat.txt", proof.Text)
}

func (w *InstallScriptWriter) WriteFormulaDump(dump string) error {
	return w.write(w.Path+".formula.txt", dump)
}

func (w *InstallScriptWriter) write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write output artifact: " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = (*InstallScriptWriter)(nil)
