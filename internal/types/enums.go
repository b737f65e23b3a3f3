package types

// ConstraintOp is a version-range relational operator recognized by the
// manifest grammar. "==" is the only equality form; the
// pip/PEP 440 ecosystem this resolver targets has no bare "=".
type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)

// OpTokens is the ordered list of operator tokens tried during parsing.
// Two-character tokens must precede their single-character prefixes
// (">=" before ">", "<=" before "<") to avoid false matches.
var OpTokens = []ConstraintOp{
	ConstraintOpEq,
	ConstraintOpNe,
	ConstraintOpCompat,
	ConstraintOpGte,
	ConstraintOpLte,
	ConstraintOpGt,
	ConstraintOpLt,
}
