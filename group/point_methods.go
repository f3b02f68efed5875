package group

import "github.com/GIMICI/eckey/field"

// X returns the x-coordinate, or zero for the point at infinity.
func (p *Point) X() *field.FieldVal {
	if p.infinity {
		return field.Zero()
	}
	return p.x
}

// Y returns the y-coordinate, or zero for the point at infinity.
func (p *Point) Y() *field.FieldVal {
	if p.infinity {
		return field.Zero()
	}
	return p.y
}
