package composition

import "github.com/vybium/towerproof/internal/towerproof/field"

// aesFieldLevel is the tower level of the AES-isomorphic byte field
// (spec §3: "an AES-isomorphic 8-bit field at level 3").
const aesFieldLevel = 3

// MixBytesRow is the Grøstl MixBytes circulant row in the AES field,
// c = (02, 02, 03, 04, 05, 03, 05, 07), grounded on the MIX_BYTES_VEC
// constant of the reference arithmetization.
var MixBytesRow = [8]byte{0x02, 0x02, 0x03, 0x04, 0x05, 0x03, 0x05, 0x07}

// MixColumn is a degree-1 composition over 9 variables (query[0] is the
// claimed output, query[1:9] are the eight MixBytes inputs) asserting
// `output == Σ c_k * input_k` over the AES field, per spec §4.C.
type MixColumn struct{}

// NewMixColumn returns the MixColumn composition. It carries no state.
func NewMixColumn() *MixColumn {
	return &MixColumn{}
}

func (MixColumn) NVars() int { return 9 }

func (MixColumn) Degree() int { return 1 }

func (MixColumn) BinaryTowerLevel() int { return aesFieldLevel }

func (m MixColumn) Evaluate(query []field.Element) (field.Element, error) {
	if err := checkArity(m, query); err != nil {
		return field.Element{}, err
	}
	acc := field.Zero(aesFieldLevel)
	for k, c := range MixBytesRow {
		acc = acc.Add(query[k+1].Mul(field.NewAES(c)))
	}
	// Characteristic 2: subtraction is addition.
	return acc.Add(query[0]), nil
}

func (m MixColumn) Expression() Expr {
	var sum Expr = Const{Value: field.Zero(aesFieldLevel)}
	for k, c := range MixBytesRow {
		term := Mul{Left: Const{Value: field.NewAES(c)}, Right: Var{Index: k + 1}}
		sum = Add{Left: sum, Right: term}
	}
	return Add{Left: sum, Right: Var{Index: 0}}
}
