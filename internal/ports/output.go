package ports

import "smtresolve/internal/types"

// OutputPort writes the pipeline's terminal artifacts: the
// pinned install script, an unsat proof on failure, and an optional
// SMT formula dump for diagnostic replay.
type OutputPort interface {
	// WriteInstallScript writes the interpreter pin followed by one
	// "name == version" line per resolved package, sorted by name.
	WriteInstallScript(interpreter string, model types.Model) error
	// WriteUnsatProof writes the proof artifact to a sibling file.
	WriteUnsatProof(proof types.UnsatProof) error
	// WriteFormulaDump writes a textual rendering of the encoded
	// formula for diagnostic replay.
	WriteFormulaDump(dump string) error
}
