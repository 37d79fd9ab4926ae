package prover

import "errors"

// ErrEmptyConstraintSystem is returned when asked to prove a
// ConstraintSystem with no registered oracles.
var ErrEmptyConstraintSystem = errors.New("prover: constraint system has no oracles")

// ErrNoCommittedOracles is returned when a ConstraintSystem has no
// committed columns to commit to — there is nothing for the prover to
// hide behind a Merkle root.
var ErrNoCommittedOracles = errors.New("prover: constraint system has no committed oracles")

// ErrWitnessInvalid is returned when the supplied witness does not
// satisfy every constraint at every hypercube row. For a failing row,
// Prove wraps it together with the rowcheck error in one fmt.Errorf, so
// an errors.As for the *rowcheck.ConstraintViolationError naming the
// failed constraint also succeeds. Prove also returns it, wrapped alone,
// when a committed column's extension fails its low-degree check.
var ErrWitnessInvalid = errors.New("prover: witness does not satisfy the constraint system")
