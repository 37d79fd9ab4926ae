// Package builder implements the oracle/column registry (spec §4.E):
// the constraint-system builder that names, shapes, and wires up
// committed/transparent/linear-combination/shifted columns and
// accumulates zero-constraints against them. Oracles are append-only
// with stable integer ids, mirroring the cyclic-abstraction design note
// in spec §9: the composition/oracle DAG is owned here by id, not by
// embedded pointers, to avoid a cyclic ownership graph.
package builder

import "github.com/vybium/towerproof/internal/towerproof/field"

// OracleID is a stable, append-only index into a Builder's oracle table.
type OracleID int

// OracleKind tags which of the four oracle variants spec §3 describes
// an Oracle is.
type OracleKind int

const (
	KindCommitted OracleKind = iota
	KindTransparent
	KindLinearCombination
	KindShifted
)

func (k OracleKind) String() string {
	switch k {
	case KindCommitted:
		return "committed"
	case KindTransparent:
		return "transparent"
	case KindLinearCombination:
		return "linear_combination"
	case KindShifted:
		return "shifted"
	default:
		return "unknown"
	}
}

// LinearTerm is one summand c_j * O_j of a linear-combination oracle.
type LinearTerm struct {
	Oracle OracleID
	Coeff  field.Element
}

// Oracle is a single registered column: fixed n (log_size), fixed tower
// level, and an immutable description of how it is computed (spec §3:
// "Invariants per oracle: fixed n, fixed tower level, immutable
// composition after registration").
type Oracle struct {
	ID      OracleID
	Name    string
	Kind    OracleKind
	LogSize int
	Level   int

	// Transparent-only.
	TransparentValue field.Element

	// LinearCombination-only.
	Terms  []LinearTerm
	Offset field.Element

	// Shifted-only.
	ShiftedFrom OracleID
}

// Constraint pairs a composition with the oracle ids feeding it (spec
// §3: "a pair (oracle_ids, composition) asserting that for all
// hypercube points, composition(oracles[ids](x)) == 0").
type Constraint struct {
	Name        string
	OracleIDs   []OracleID
	Composition CompositionLike

	// Level is the constraint's binary tower level under the max-of-levels
	// rule (spec §3/§8 property 2), computed once at AssertZero time via
	// CompositePolyOracle.BinaryTowerLevel.
	Level int
}

// CompositionLike is the minimal surface Constraint needs from a
// composition.Poly, kept narrow here to avoid builder depending on the
// concrete composition package beyond what it actually uses.
type CompositionLike interface {
	NVars() int
	Degree() int
	BinaryTowerLevel() int
}

// ConstraintSystem is the frozen artifact produced by Builder.Compile:
// an ordered oracle list, an ordered constraint list, and the committed
// batch groupings, matching the external-interface shape in spec §6.
type ConstraintSystem struct {
	Oracles          []Oracle
	Constraints      []Constraint
	CommittedBatches [][]OracleID
}
