package builder

import (
	"fmt"
	"strings"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// Builder accumulates an oracle DAG and a list of zero-constraints
// against it. It is single-threaded (spec §5: "Builder: single-
// threaded"); the resulting topology is frozen by Compile into a
// ConstraintSystem snapshot.
type Builder struct {
	oracles          []Oracle
	constraints      []Constraint
	committedBatches [][]OracleID
	namespace        []string
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) namespacedName(name string) string {
	if len(b.namespace) == 0 {
		return name
	}
	return strings.Join(b.namespace, "/") + "/" + name
}

// PushNamespace pushes a name prefix used for debug labeling of
// subsequently registered oracles.
func (b *Builder) PushNamespace(name string) {
	b.namespace = append(b.namespace, name)
}

// PopNamespace pops the most recently pushed namespace prefix.
func (b *Builder) PopNamespace() error {
	if len(b.namespace) == 0 {
		return ErrEmptyNamespaceStack
	}
	b.namespace = b.namespace[:len(b.namespace)-1]
	return nil
}

func (b *Builder) nextID() OracleID {
	return OracleID(len(b.oracles))
}

func (b *Builder) register(o Oracle) OracleID {
	o.ID = b.nextID()
	b.oracles = append(b.oracles, o)
	return o.ID
}

// Oracle returns the registered oracle for id, or an error if id was
// never issued by this builder.
func (b *Builder) Oracle(id OracleID) (Oracle, error) {
	if int(id) < 0 || int(id) >= len(b.oracles) {
		return Oracle{}, fmt.Errorf("builder: oracle(%d): %w", id, ErrUnknownOracleID)
	}
	return b.oracles[id], nil
}

// AddCommittedMultiple registers `count` committed columns sharing a
// name prefix, log_size, and tower level, returning their ids in order
// — the builder's `add_committed_multiple` operation (spec §4.E).
func (b *Builder) AddCommittedMultiple(name string, logSize, level, count int) ([]OracleID, error) {
	ids := make([]OracleID, count)
	for i := 0; i < count; i++ {
		ids[i] = b.register(Oracle{
			Name:    fmt.Sprintf("%s[%d]", b.namespacedName(name), i),
			Kind:    KindCommitted,
			LogSize: logSize,
			Level:   level,
		})
	}
	b.committedBatches = append(b.committedBatches, ids)
	return ids, nil
}

// AddCommitted registers a single committed column.
func (b *Builder) AddCommitted(name string, logSize, level int) (OracleID, error) {
	id := b.register(Oracle{
		Name:    b.namespacedName(name),
		Kind:    KindCommitted,
		LogSize: logSize,
		Level:   level,
	})
	b.committedBatches = append(b.committedBatches, []OracleID{id})
	return id, nil
}

// AddTransparentConstant registers a publicly computable constant
// column (spec's canonical example: the constant byte i*0x10).
func (b *Builder) AddTransparentConstant(name string, logSize int, value field.Element) (OracleID, error) {
	return b.register(Oracle{
		Name:             b.namespacedName(name),
		Kind:             KindTransparent,
		LogSize:          logSize,
		Level:            value.Level(),
		TransparentValue: value,
	}), nil
}

// AddLinearCombination registers Σ terms[j].Coeff * terms[j].Oracle + offset
// as a new oracle. Every term's oracle must already be registered, at
// the declared log_size and tower level; otherwise this fails with
// LogSizeMismatchError or TowerLevelMismatchError respectively.
func (b *Builder) AddLinearCombination(name string, logSize, level int, terms []LinearTerm, offset field.Element) (OracleID, error) {
	for _, term := range terms {
		o, err := b.Oracle(term.Oracle)
		if err != nil {
			return 0, err
		}
		if o.LogSize != logSize {
			return 0, &LogSizeMismatchError{OracleID: term.Oracle, Expected: logSize, Got: o.LogSize}
		}
		if o.Level != level {
			return 0, &TowerLevelMismatchError{OracleID: term.Oracle, Expected: level, Got: o.Level}
		}
		if term.Coeff.Level() != level {
			return 0, &TowerLevelMismatchError{OracleID: term.Oracle, Expected: level, Got: term.Coeff.Level()}
		}
	}
	cp := make([]LinearTerm, len(terms))
	copy(cp, terms)
	return b.register(Oracle{
		Name:    b.namespacedName(name),
		Kind:    KindLinearCombination,
		LogSize: logSize,
		Level:   level,
		Terms:   cp,
		Offset:  offset,
	}), nil
}

// AddShifted registers an oracle derived from another oracle. The
// shifted oracle shares its source's tower level and log_size. No shift
// offset is stored: rowcheck.Resolve reads the source's value at the
// same row, so the new oracle aliases its source.
func (b *Builder) AddShifted(name string, from OracleID) (OracleID, error) {
	src, err := b.Oracle(from)
	if err != nil {
		return 0, err
	}
	return b.register(Oracle{
		Name:        b.namespacedName(name),
		Kind:        KindShifted,
		LogSize:     src.LogSize,
		Level:       src.Level,
		ShiftedFrom: from,
	}), nil
}

// AssertZero registers a constraint: for every hypercube point,
// composition(oracles[ids](x)) must evaluate to zero. Fails with
// ArityMismatchError if len(ids) != composition.NVars(), or with
// IncorrectNumberOfVariablesError if the referenced oracles don't
// share a log_size (via CompositePolyOracle,
// which also derives the constraint's binary tower level).
func (b *Builder) AssertZero(name string, ids []OracleID, composition CompositionLike) error {
	if len(ids) != composition.NVars() {
		return &ArityMismatchError{Expected: composition.NVars(), Got: len(ids)}
	}
	oracles := make([]Oracle, len(ids))
	for i, id := range ids {
		o, err := b.Oracle(id)
		if err != nil {
			return err
		}
		oracles[i] = o
	}
	composite, err := NewCompositePolyOracle(oracles, composition)
	if err != nil {
		return err
	}
	cp := make([]OracleID, len(ids))
	copy(cp, ids)
	b.constraints = append(b.constraints, Constraint{
		Name:        b.namespacedName(name),
		OracleIDs:   cp,
		Composition: composition,
		Level:       composite.BinaryTowerLevel(),
	})
	return nil
}

// Compile freezes the builder's current topology into a ConstraintSystem
// snapshot (spec §6's external-interface artifact).
func (b *Builder) Compile() *ConstraintSystem {
	oracles := make([]Oracle, len(b.oracles))
	copy(oracles, b.oracles)
	constraints := make([]Constraint, len(b.constraints))
	copy(constraints, b.constraints)
	batches := make([][]OracleID, len(b.committedBatches))
	for i, batch := range b.committedBatches {
		cp := make([]OracleID, len(batch))
		copy(cp, batch)
		batches[i] = cp
	}
	return &ConstraintSystem{
		Oracles:          oracles,
		Constraints:      constraints,
		CommittedBatches: batches,
	}
}
