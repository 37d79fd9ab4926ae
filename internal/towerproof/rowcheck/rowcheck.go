// Package rowcheck evaluates a compiled constraint system one
// hypercube point at a time, grounded on the teacher's
// protocols.AIRConstraints row-evaluator pattern ("Evaluator func(row
// []field.Element) field.Element", constraints.go): given a way to
// look up a committed oracle's value at a single row, it recursively
// resolves every transparent and linear-combination oracle the same
// way groestl's witness-satisfaction test resolves them, then checks
// every AssertZero constraint evaluates to zero at that row.
//
// This is the shared core both prover.Prove (which runs it over every
// row before committing) and verifier.Verify (which runs it only over
// the rows opened by a proof's Merkle queries) use, so the two can
// never disagree about what "the witness satisfies the constraint
// system" means.
package rowcheck

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

// evaluablePoly is the minimal surface CheckRow needs from a
// constraint's composition: arity and pointwise evaluation. This is
// narrower than composition.Poly (which also exposes Expression() for
// IndexComposition's variable-remapping machinery) so that any
// builder.CompositionLike implementation usable in a constraint can be
// row-checked without also supporting expression introspection.
type evaluablePoly interface {
	NVars() int
	Evaluate(query []field.Element) (field.Element, error)
}

// CommittedLookup returns the value of a committed oracle at a single,
// implicit row; prover.Prove binds this to a full witness column,
// verifier.Verify binds it to one Merkle-opened row.
type CommittedLookup func(id builder.OracleID) (field.Element, error)

// ConstraintViolationError is returned when a constraint's composition
// does not evaluate to zero at the row under test.
type ConstraintViolationError struct {
	Name string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("rowcheck: constraint %q is not satisfied", e.Name)
}

func (e *ConstraintViolationError) Unwrap() error {
	return errConstraintViolation
}

var errConstraintViolation = fmt.Errorf("rowcheck: constraint violation")

// Resolve returns oracle id's value at the row lookup is implicitly
// bound to, recursing through transparent and linear-combination
// definitions down to committed leaves.
func Resolve(cs *builder.ConstraintSystem, lookup CommittedLookup, id builder.OracleID) (field.Element, error) {
	if int(id) < 0 || int(id) >= len(cs.Oracles) {
		return field.Element{}, fmt.Errorf("rowcheck: resolve(%d): %w", id, builder.ErrUnknownOracleID)
	}
	o := cs.Oracles[id]
	switch o.Kind {
	case builder.KindCommitted:
		return lookup(id)
	case builder.KindTransparent:
		return o.TransparentValue, nil
	case builder.KindLinearCombination:
		acc := o.Offset
		for _, term := range o.Terms {
			v, err := Resolve(cs, lookup, term.Oracle)
			if err != nil {
				return field.Element{}, err
			}
			acc = acc.Add(term.Coeff.Mul(v))
		}
		return acc, nil
	case builder.KindShifted:
		return Resolve(cs, lookup, o.ShiftedFrom)
	default:
		return field.Element{}, fmt.Errorf("rowcheck: oracle %d: unknown kind %v", id, o.Kind)
	}
}

// GatherQuery resolves every id in ids at the implicit row, in order,
// producing the query slice a composition.Poly.Evaluate expects.
func GatherQuery(cs *builder.ConstraintSystem, lookup CommittedLookup, ids []builder.OracleID) ([]field.Element, error) {
	out := make([]field.Element, len(ids))
	for i, id := range ids {
		v, err := Resolve(cs, lookup, id)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CheckRow evaluates every constraint in cs at the implicit row and
// fails with a *ConstraintViolationError on the first one that isn't
// identically zero there.
func CheckRow(cs *builder.ConstraintSystem, lookup CommittedLookup) error {
	for _, c := range cs.Constraints {
		query, err := GatherQuery(cs, lookup, c.OracleIDs)
		if err != nil {
			return err
		}
		p, ok := c.Composition.(evaluablePoly)
		if !ok {
			return fmt.Errorf("rowcheck: constraint %q: composition does not support row evaluation", c.Name)
		}
		v, err := p.Evaluate(query)
		if err != nil {
			return fmt.Errorf("rowcheck: constraint %q: %w", c.Name, err)
		}
		if !v.IsZero() {
			return &ConstraintViolationError{Name: c.Name}
		}
	}
	return nil
}

// CommittedOracleIDs returns the ids of every committed oracle in cs,
// in ascending id order, which is the column order prover.Prove and
// verifier.Verify both use for Merkle rows.
func CommittedOracleIDs(cs *builder.ConstraintSystem) []builder.OracleID {
	var ids []builder.OracleID
	for _, o := range cs.Oracles {
		if o.Kind == builder.KindCommitted {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
