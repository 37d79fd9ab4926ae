package field

// MulSubfield multiplies e by a scalar that may live at a lower tower
// level (a "subfield point"), extending the scalar up to e's level
// first. This is the operation the sumcheck engine's point schedule
// needs when a finite evaluation-domain point (typically a small
// subfield element) is broadcast against a larger-level multilinear
// evaluation (spec §4.G: "Interpolation uses the packed broadcast of
// the subfield point, avoiding scalar->packed repetition").
func (e Element) MulSubfield(scalar Element) Element {
	if scalar.level == e.level {
		return e.Mul(scalar)
	}
	return e.Mul(scalar.Extend(e.level))
}
