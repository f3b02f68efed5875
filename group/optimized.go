package group

import (
	"github.com/GIMICI/eckey/field"
	"github.com/GIMICI/eckey/scalar"
)

// AddOptimized performs point addition using the same affine slope
// formula as Add, but with FieldVal's Sub/Mul/Square instead of Add's
// bigAffinePoint conversion and on-curve checks. FieldVal computes each
// of those operations through math/big internally. The modular inverse
// of the slope denominator is taken with big.Int's ModInverse directly.
func (p *Point) AddOptimized(a, b *Point) *Point {
	if a.infinity {
		*p = *b
		return p
	}
	if b.infinity {
		*p = *a
		return p
	}

	if a.x.Equal(b.x) {
		if a.y.Equal(b.y) {
			return p.DoubleOptimized(a)
		}
		*p = *Infinity()
		return p
	}

	// s = (by - ay) / (bx - ax)
	numerator := field.Zero().Sub(b.y, a.y)
	denominator := field.Zero().Sub(b.x, a.x)

	denominatorBig := bigIntFromFieldVal(denominator)
	denominatorBig.ModInverse(denominatorBig, secp256k1Prime)
	denominatorInv, _ := fieldValFromBigInt(denominatorBig)

	s := field.Zero().Mul(numerator, denominatorInv)

	// x3 = s² - ax - bx
	x3 := field.Zero().Square(s)
	x3.Sub(x3, a.x)
	x3.Sub(x3, b.x)

	// y3 = s(ax - x3) - ay
	y3 := field.Zero().Sub(a.x, x3)
	y3.Mul(s, y3)
	y3.Sub(y3, a.y)

	p.x = x3
	p.y = y3
	p.infinity = false

	return p
}

// DoubleOptimized performs point doubling the same way AddOptimized
// performs addition: FieldVal operations throughout, and big.Int's
// ModInverse for the slope's modular inverse.
func (p *Point) DoubleOptimized(a *Point) *Point {
	if a.infinity {
		*p = *a
		return p
	}

	// s = 3*ax² / (2*ay)  (secp256k1's curve coefficient a is 0)
	numerator := field.Zero().Square(a.x)
	numerator.Add(numerator, numerator)
	numerator.Add(numerator, field.Zero().Square(a.x))

	denominator := field.Zero().Add(a.y, a.y)

	denominatorBig := bigIntFromFieldVal(denominator)
	denominatorBig.ModInverse(denominatorBig, secp256k1Prime)
	denominatorInv, _ := fieldValFromBigInt(denominatorBig)

	s := field.Zero().Mul(numerator, denominatorInv)

	// x3 = s² - 2*ax
	x3 := field.Zero().Square(s)
	twoAx := field.Zero().Add(a.x, a.x)
	x3.Sub(x3, twoAx)

	// y3 = s(ax - x3) - ay
	y3 := field.Zero().Sub(a.x, x3)
	y3.Mul(s, y3)
	y3.Sub(y3, a.y)

	p.x = x3
	p.y = y3
	p.infinity = false

	return p
}

// ScalarMultOptimized performs binary double-and-add scalar
// multiplication using AddOptimized/DoubleOptimized in place of Add/Double.
func (p *Point) ScalarMultOptimized(k *scalar.Scalar, point *Point) *Point {
	if k.IsZero() || point.infinity {
		*p = *Infinity()
		return p
	}

	kBytes := k.Bytes()
	*p = *Infinity()
	addend := &Point{}
	*addend = *point

	for i := 0; i < 256; i++ {
		byteIndex := i / 8
		bitIndex := 7 - (i % 8)

		p.DoubleOptimized(p)

		if (kBytes[byteIndex]>>bitIndex)&1 == 1 {
			p.AddOptimized(p, addend)
		}
	}

	return p
}
