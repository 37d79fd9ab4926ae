package sumcheck

import (
	"errors"
	"fmt"
)

// ErrIncorrectDestSliceLengths is returned when a caller-supplied
// destination buffer does not have the expected length.
var ErrIncorrectDestSliceLengths = errors.New("sumcheck: incorrect destination slice lengths")

// ErrNoScratchSpace names the missing-scratch failure of the
// low-to-high access strategy. LowToHighAccess.Read takes no scratch
// buffer and allocates its own on every call, so no function in this
// package returns this error.
var ErrNoScratchSpace = errors.New("sumcheck: no scratch space provided")

// IncorrectNontrivialEvalPointsLengthError is returned when the
// supplied nontrivial evaluation points don't match what the
// evaluators' point ranges require.
type IncorrectNontrivialEvalPointsLengthError struct {
	Expected int
	Got      int
}

func (e *IncorrectNontrivialEvalPointsLengthError) Error() string {
	return fmt.Sprintf("sumcheck: incorrect nontrivial evaluation points length: expected %d, got %d", e.Expected, e.Got)
}

func (e *IncorrectNontrivialEvalPointsLengthError) Unwrap() error {
	return errIncorrectNontrivialEvalPointsLength
}

var errIncorrectNontrivialEvalPointsLength = errors.New("sumcheck: incorrect nontrivial evaluation points length")

// ErrIndexCompositionIndicesOutOfBounds is returned by
// CalculateRoundEvals when an Evaluator's Inputs hold an index outside
// the round's multilinears slice. It is this package's own sentinel,
// distinct from the composition package's error of the same name.
var ErrIndexCompositionIndicesOutOfBounds = errors.New("sumcheck: evaluator input index out of bounds")
