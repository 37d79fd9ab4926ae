package field

// Extend reinterprets e as an element of a higher tower level, keeping
// the bit pattern unchanged. Within levels 0-2 and within levels 3-7
// this is a field embedding; from a level <= 2 to a level >= 3 it only
// copies the bits and does not preserve multiplication. Panics if `to`
// is below e's own level; use Truncate for the other direction.
func (e Element) Extend(to int) Element {
	if to < e.level {
		panic("field: cannot Extend to a lower tower level, use Truncate")
	}
	return New(to, e.val)
}

// Truncate reinterprets e as an element of a lower tower level by
// masking off the high bits. Panics if `to` is above e's own level.
func (e Element) Truncate(to int) Element {
	if to > e.level {
		panic("field: cannot Truncate to a higher tower level, use Extend")
	}
	return New(to, e.val)
}
