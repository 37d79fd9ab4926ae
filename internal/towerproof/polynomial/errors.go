package polynomial

import "errors"

// ErrIncorrectDestSliceLengths is returned whenever a caller-supplied
// destination buffer does not match the length the operation requires,
// mirroring the sumcheck engine's IncorrectDestSliceLengths failure mode.
var ErrIncorrectDestSliceLengths = errors.New("polynomial: destination slice has incorrect length")

// ErrNotPowerOfTwo is returned when constructing a dense multilinear
// from an evaluation table whose length is not a power of two.
var ErrNotPowerOfTwo = errors.New("polynomial: evaluation table length must be a power of two")

// ErrSubcubeOutOfRange is returned when a requested subcube index and
// width would read past the end of the backing evaluation table.
var ErrSubcubeOutOfRange = errors.New("polynomial: subcube index/width out of range")

// ErrTensorQueryLength is returned when a tensor query's length is not
// a power of two, or exceeds the multilinear's own variable count.
var ErrTensorQueryLength = errors.New("polynomial: tensor query length invalid")
