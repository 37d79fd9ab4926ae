package domain

import "errors"

// ErrDuplicateDomainPoint is returned when constructing an evaluation
// domain from a point set containing a repeated value.
var ErrDuplicateDomainPoint = errors.New("domain: duplicate domain point")

// ErrDomainSizeTooLarge is returned when more points are requested than
// the tower field's additive successor order can supply.
var ErrDomainSizeTooLarge = errors.New("domain: requested domain size too large for field")

// ErrSingularVandermonde is returned by InterpolationDomain construction
// if the Vandermonde matrix built from the domain points is singular
// (cannot happen for genuinely distinct points, but guarded defensively).
var ErrSingularVandermonde = errors.New("domain: singular vandermonde matrix")
