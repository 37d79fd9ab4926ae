package composition

import "github.com/vybium/towerproof/internal/towerproof/field"

// sboxConstraintLevel is the tower level the SBoxConstraint equation is
// evaluated at. The composition needs mul_primitive(3), which
// field.Element.MulPrimitive only defines for elements whose own tower
// level is >= 4 (spec's "must be a typed error below that threshold"
// open question, §9); x and inv therefore get Extend-ed from the AES
// byte field (level 3) up to level 4 before the primitive multiply.
const sboxConstraintLevel = 4

// SBoxConstraint is a degree-3 composition over two variables (x, inv)
// asserting the Rijndael S-box inversion relation: either x*inv == 1,
// or both x and inv are zero. Encoded as
//
//	(x*inv - 1) * (x + inv.mul_primitive(3)) == 0
//
// per spec §4.C.
type SBoxConstraint struct{}

// NewSBoxConstraint returns the SBoxConstraint composition.
func NewSBoxConstraint() *SBoxConstraint {
	return &SBoxConstraint{}
}

func (SBoxConstraint) NVars() int { return 2 }

func (SBoxConstraint) Degree() int { return 3 }

func (SBoxConstraint) BinaryTowerLevel() int { return sboxConstraintLevel }

func (s SBoxConstraint) Evaluate(query []field.Element) (field.Element, error) {
	if err := checkArity(s, query); err != nil {
		return field.Element{}, err
	}
	x := query[0].Extend(sboxConstraintLevel)
	inv := query[1].Extend(sboxConstraintLevel)

	nonZeroCase := x.Mul(inv).Add(field.One(sboxConstraintLevel))

	invPrimitive, err := inv.MulPrimitive(3)
	if err != nil {
		return field.Element{}, err
	}
	zeroCase := x.Add(invPrimitive)

	return nonZeroCase.Mul(zeroCase), nil
}

// Expression returns (x*inv + 1) * (x + inv) over level-4 constants.
// mul_primitive(3) has no Var/Const/Add/Mul form, so the tree leaves
// that factor out and does not evaluate to what Evaluate returns; it
// records which variables the relation uses (both x and inv), which is
// what VarsUsage and IndexComposition's remapping read from it.
func (s SBoxConstraint) Expression() Expr {
	nonZero := Add{Left: Mul{Left: Var{Index: 0}, Right: Var{Index: 1}}, Right: Const{Value: field.One(sboxConstraintLevel)}}
	zero := Add{Left: Var{Index: 0}, Right: Var{Index: 1}}
	return Mul{Left: nonZero, Right: zero}
}
