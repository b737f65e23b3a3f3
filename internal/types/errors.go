package types

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Error taxonomy. Each constructor pins an errbuilder code so that a
// CLI wrapper's exitCodeForError can switch on it without string
// matching, the same convention internal/cli/root.go uses. Codes are
// shared: UnknownPackage, UnknownVersion and NoAvailableInterpreter use
// CodeNotFound; EmptyCandidate, Unsat and InterpreterIncompatible use
// CodeFailedPrecondition.

func ErrMalformedManifest(reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed manifest: %s", reason))
}

func ErrUnknownPackage(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown package: %s", name))
}

func ErrUnknownVersion(name, version string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown version %s for package %s", version, name))
}

// ErrEmptyCandidate marks a direct Requirement whose range admits no
// version present in the graph. The pipeline does not return it as an
// error: closure and encoder record such a Requirement as an empty
// cause, and the solver driver renders each cause with this constructor
// into the text of ErrUnsat's proof.
func ErrEmptyCandidate(req Requirement) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("no candidate version satisfies requirement: %s", req))
}

func ErrUnsat(proof UnsatProof) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("no satisfying assignment exists").
		WithCause(fmt.Errorf("%s", proof.Text))
}

func ErrIndeterminate(reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeDeadlineExceeded).
		WithMsg(fmt.Sprintf("solver returned no definite answer: %s", reason))
}

func ErrInterpreterIncompatible(pkg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("interpreter range collapsed to empty at package: %s", pkg))
}

func ErrNoAvailableInterpreter() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no catalog interpreter version satisfies the merged range")
}
