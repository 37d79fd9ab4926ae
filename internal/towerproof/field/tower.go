// Package field implements the binary tower field family used throughout
// towerproof: fields of 2, 4, 16, 256, ... 2^128 elements. Levels 1 and 2
// are quadratic extensions of the level below after the Fan-Paar /
// Wiedemann tower construction. Level 3 (the 8-bit field) is the
// Rijndael/AES byte field itself (reduction polynomial 0x11B), which lets
// the Grøstl S-box be expressed as an affine map over its additive basis
// (see the groestl package), and levels 4-7 are quadratic extensions of
// level 3. Levels 0-2 therefore nest inside one another, and levels 3-7
// nest inside one another, but level 2 is not a subfield of level 3 under
// the bit-pattern embedding Extend uses.
package field

import (
	"fmt"
	"math/big"
)

// MaxLevel is the highest tower level this implementation supports
// (2^MaxLevel = 128 bits).
const MaxLevel = 7

// Element is a single element of the binary tower field at a given level.
// The value is stored as a flat little-endian bit pattern masked to
// 2^level bits. At levels 1, 2 and 4-7 the quadratic-extension pair
// decomposition (hi, lo) is simply the high and low half of that bit
// pattern; level 3 is the AES field and is not split that way. This is
// what makes mul_primitive well defined across levels 3-7 (see
// MulPrimitive).
type Element struct {
	val   *big.Int
	level int
}

// BitWidth returns the number of bits (2^level) used to represent an
// element of the given tower level.
func BitWidth(level int) int {
	return 1 << uint(level)
}

func mask(level int) *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, uint(BitWidth(level))), one)
}

// New creates a tower field element at the given level from a big.Int,
// masking it down to the level's bit width.
func New(level int, val *big.Int) Element {
	v := new(big.Int).And(val, mask(level))
	return Element{val: v, level: level}
}

// FromUint64 creates an element at the given level from a raw uint64.
func FromUint64(level int, val uint64) Element {
	return New(level, new(big.Int).SetUint64(val))
}

// Zero returns the additive identity at the given tower level.
func Zero(level int) Element {
	return Element{val: big.NewInt(0), level: level}
}

// One returns the multiplicative identity at the given tower level.
func One(level int) Element {
	return Element{val: big.NewInt(1), level: level}
}

// Level returns the element's tower level.
func (e Element) Level() int {
	return e.level
}

// Uint64 returns the element's bit pattern as a uint64. Panics if the
// element's level has more than 64 bits.
func (e Element) Uint64() uint64 {
	if BitWidth(e.level) > 64 {
		panic(fmt.Sprintf("field: level %d element does not fit in uint64", e.level))
	}
	return e.val.Uint64()
}

// Byte returns the element's bit pattern as a byte. Valid for level-3
// (8-bit, AES-isomorphic) elements and any element known to fit in a byte.
func (e Element) Byte() byte {
	return byte(e.val.Uint64())
}

// Big returns a copy of the element's underlying big.Int value.
func (e Element) Big() *big.Int {
	return new(big.Int).Set(e.val)
}

// IsZero reports whether the element is the additive identity.
func (e Element) IsZero() bool {
	return e.val.Sign() == 0
}

// IsOne reports whether the element is the multiplicative identity.
func (e Element) IsOne() bool {
	return e.val.Cmp(big.NewInt(1)) == 0
}

// Equal reports whether two elements at the same level have equal value.
func (e Element) Equal(other Element) bool {
	return e.level == other.level && e.val.Cmp(other.val) == 0
}

func (e Element) requireSameLevel(other Element, op string) {
	if e.level != other.level {
		panic(fmt.Sprintf("field: cannot %s elements at different tower levels (%d vs %d)", op, e.level, other.level))
	}
}

// Add returns e + other (binary field addition is XOR). Panics if the
// operands are at different tower levels.
func (e Element) Add(other Element) Element {
	e.requireSameLevel(other, "add")
	return Element{val: new(big.Int).Xor(e.val, other.val), level: e.level}
}

// Sub is an alias for Add: in characteristic 2, subtraction is addition.
func (e Element) Sub(other Element) Element {
	return e.Add(other)
}

// Neg returns the additive inverse of e, which is e itself in characteristic 2.
func (e Element) Neg() Element {
	return e
}

// Mul returns e * other using the recursive tower multiplication formula.
// Panics if the operands are at different tower levels.
func (e Element) Mul(other Element) Element {
	e.requireSameLevel(other, "multiply")
	return Element{val: mulTower(e.level, e.val, other.val), level: e.level}
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// InvertOrZero returns the multiplicative inverse of e, or zero if e is
// zero (matching the tower field's documented zero-safe contract).
func (e Element) InvertOrZero() Element {
	if e.IsZero() {
		return Zero(e.level)
	}
	// The multiplicative group of a 2^(2^level)-element field has order
	// 2^(2^level) - 1, so x^(order-1) == x^-1 by Fermat's little theorem.
	// Exponentiation is done with the tower's own multiplication so this
	// works uniformly for every level without a separate Euclidean path.
	order := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(BitWidth(e.level))), big.NewInt(1))
	exp := new(big.Int).Sub(order, big.NewInt(1))
	return e.pow(exp)
}

func (e Element) pow(exp *big.Int) Element {
	result := One(e.level)
	base := e
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
	}
	return result
}

// Bits returns the level-0 additive-basis decomposition of e: bit i of
// the flat representation, as a level-0 (GF(2)) element. This is the
// polynomial/monomial basis, which for this implementation's flat-bit
// packing is simply the raw bits of the value.
func (e Element) Bits() []Element {
	n := BitWidth(e.level)
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		out[i] = FromUint64(0, uint64(e.val.Bit(i)))
	}
	return out
}

// BasisElement returns the i-th additive basis element at the given
// level: the element whose only nonzero bit is bit i.
func BasisElement(level, i int) Element {
	if i < 0 || i >= BitWidth(level) {
		panic(fmt.Sprintf("field: basis index %d out of range for level %d", i, level))
	}
	return New(level, new(big.Int).Lsh(big.NewInt(1), uint(i)))
}

// primitiveElement returns X_level, the generator adjoined when building
// level+1 from level, represented as an element of `level` itself. For
// level 0 this is the field's unique nonzero element, 1.
func primitiveElement(level int) *big.Int {
	if level == 0 {
		return big.NewInt(1)
	}
	half := 1 << uint(level-1)
	return new(big.Int).Lsh(big.NewInt(1), uint(half))
}

// MulPrimitive multiplies e by the i-th primitive tower element (the
// generator adjoined at level i). It is defined exactly when e's tower
// level is at least i+1, per the documented contract; otherwise it
// returns a typed error rather than relying on undefined behavior.
func (e Element) MulPrimitive(i int) (Element, error) {
	if e.level < i+1 {
		return Element{}, fmt.Errorf("field: mul_primitive(%d) requires tower level >= %d, got %d: %w", i, i+1, e.level, ErrPrimitiveTooHigh)
	}
	// Because this implementation packs every level as a flat bit string,
	// X_i's bit pattern (1 << 2^i) is the same regardless of which higher
	// level it is viewed at.
	primitive := New(e.level, new(big.Int).Lsh(big.NewInt(1), uint(1<<uint(i))))
	return e.Mul(primitive), nil
}

// mulTower implements the recursive Karatsuba-style tower multiplication:
//
//	z0 = lo(a)*lo(b)
//	z2 = hi(a)*hi(b)
//	z1 = (lo(a)+hi(a))*(lo(b)+hi(b)) - z0 - z2
//	lo(c) = z0 + z2
//	hi(c) = z1 + z2*alpha
//
// where alpha is the level's defining quadratic's linear coefficient,
// which by construction equals the primitive element of the level below.
// Level 3 is the distinguished AES-isomorphic byte field and is
// multiplied directly via the Rijndael reduction; level 0 is GF(2),
// where multiplication is logical AND.
func mulTower(level int, a, b *big.Int) *big.Int {
	switch level {
	case 0:
		if a.Bit(0) == 1 && b.Bit(0) == 1 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case 3:
		return big.NewInt(int64(aesMul(byte(a.Uint64()), byte(b.Uint64()))))
	}

	half := 1 << uint(level-1)
	halfMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(half)), big.NewInt(1))

	a0 := new(big.Int).And(a, halfMask)
	a1 := new(big.Int).Rsh(a, uint(half))
	b0 := new(big.Int).And(b, halfMask)
	b1 := new(big.Int).Rsh(b, uint(half))

	z0 := mulTower(level-1, a0, b0)
	z2 := mulTower(level-1, a1, b1)

	s := new(big.Int).Xor(a0, a1)
	t := new(big.Int).Xor(b0, b1)
	z1 := mulTower(level-1, s, t)
	z1.Xor(z1, z0)
	z1.Xor(z1, z2)

	alpha := primitiveElement(level - 1)
	z2alpha := mulTower(level-1, z2, alpha)

	lo := new(big.Int).Xor(z0, z2)
	hi := new(big.Int).Xor(z1, z2alpha)

	return new(big.Int).Or(new(big.Int).Lsh(hi, uint(half)), lo)
}

// String renders the element's value in hex, annotated with its level.
func (e Element) String() string {
	return fmt.Sprintf("F2^(2^%d)(0x%x)", e.level, e.val)
}
