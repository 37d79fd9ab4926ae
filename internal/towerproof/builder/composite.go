package builder

import "fmt"

// CompositePolyOracle groups a list of inner oracles with a composition
// evaluated over them, and implements the tower-level rule from spec
// §3/§8 property 2:
//
//	binary_tower_level() == max(composition.binary_tower_level(), max(inner[i].binary_tower_level()))
//
// grounded on the reference oracle/multivariate.rs CompositePolyOracle.
type CompositePolyOracle struct {
	inner       []Oracle
	composition CompositionLike
}

// NewCompositePolyOracle validates that the number of inner oracles
// matches the composition's arity (else ErrCompositionMismatch) and
// that every inner oracle shares the same log_size (else
// IncorrectNumberOfVariablesError), then returns the composite oracle.
func NewCompositePolyOracle(inner []Oracle, composition CompositionLike) (*CompositePolyOracle, error) {
	if len(inner) != composition.NVars() {
		return nil, fmt.Errorf("builder: new composite poly oracle: %w (composition wants %d, got %d inner oracles)", ErrCompositionMismatch, composition.NVars(), len(inner))
	}
	if len(inner) > 0 {
		logSize := inner[0].LogSize
		for i, o := range inner {
			if o.LogSize != logSize {
				return nil, &IncorrectNumberOfVariablesError{Expected: logSize, Got: o.LogSize, Index: i}
			}
		}
	}
	cp := make([]Oracle, len(inner))
	copy(cp, inner)
	return &CompositePolyOracle{inner: cp, composition: composition}, nil
}

// BinaryTowerLevel implements the max-of-levels rule.
func (c *CompositePolyOracle) BinaryTowerLevel() int {
	level := c.composition.BinaryTowerLevel()
	for _, o := range c.inner {
		if o.Level > level {
			level = o.Level
		}
	}
	return level
}

// NVars returns the shared log_size of the inner oracles (0 if there
// are none).
func (c *CompositePolyOracle) NVars() int {
	if len(c.inner) == 0 {
		return 0
	}
	return c.inner[0].LogSize
}

// Inner returns the composite's inner oracles.
func (c *CompositePolyOracle) Inner() []Oracle {
	return c.inner
}
