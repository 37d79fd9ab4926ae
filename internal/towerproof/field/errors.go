package field

import "errors"

// ErrPrimitiveTooHigh is returned by Element.MulPrimitive when the
// requested primitive index is not strictly below the element's tower
// level.
var ErrPrimitiveTooHigh = errors.New("field: primitive index exceeds element's tower level")
