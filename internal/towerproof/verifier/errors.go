package verifier

import "errors"

// ErrEmptyConstraintSystem mirrors prover.ErrEmptyConstraintSystem.
var ErrEmptyConstraintSystem = errors.New("verifier: constraint system has no oracles")

// ErrProofShapeMismatch is returned when a Proof's committed-id list,
// row widths, or domain sizes don't match the ConstraintSystem being
// checked against.
var ErrProofShapeMismatch = errors.New("verifier: proof shape does not match constraint system")

// ErrMerkleOpeningFailed is returned when an opened row's Merkle proof
// does not authenticate against the proof's root.
var ErrMerkleOpeningFailed = errors.New("verifier: merkle opening failed")

// ErrConstraintViolated is returned when an opened row does not
// satisfy every constraint once its derived oracles are recomputed.
var ErrConstraintViolated = errors.New("verifier: opened row violates a constraint")

// ErrLowDegreeCheckFailed is returned when a committed oracle's
// extended codeword fails pcs.CheckLowDegree, or is inconsistent with
// the row opened at a query index.
var ErrLowDegreeCheckFailed = errors.New("verifier: extended codeword failed its low-degree check")
