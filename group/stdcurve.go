package group

import (
	"crypto/elliptic"
	"math/big"

	"github.com/GIMICI/eckey/scalar"
)

// curveOrder is the secp256k1 group order n, needed here only to populate
// elliptic.CurveParams.N for code that wants a standard-library-shaped
// curve (crypto/ecdsa interop, compat recovery).
var curveOrder = new(big.Int).SetBytes([]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
	0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
	0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
})

type stdCurve struct{}

// Curve returns a crypto/elliptic.Curve implementation backed by this
// package's point arithmetic, for interop with standard library APIs
// (crypto/ecdsa.PublicKey, x509 encodings) that expect one.
func Curve() elliptic.Curve {
	return stdCurve{}
}

func (stdCurve) Params() *elliptic.CurveParams {
	g := Generator()
	return &elliptic.CurveParams{
		P:       secp256k1Prime,
		N:       curveOrder,
		B:       secp256k1B,
		Gx:      bigIntFromFieldVal(g.x),
		Gy:      bigIntFromFieldVal(g.y),
		BitSize: 256,
		Name:    "secp256k1",
	}
}

func (stdCurve) IsOnCurve(x, y *big.Int) bool {
	p, ok := bigXYToPointUnchecked(x, y)
	if !ok {
		return false
	}
	return p.IsOnCurve()
}

func (stdCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	p1, ok1 := bigXYToPointUnchecked(x1, y1)
	p2, ok2 := bigXYToPointUnchecked(x2, y2)
	if !ok1 || !ok2 {
		return new(big.Int), new(big.Int)
	}
	result := Infinity().Add(p1, p2)
	return pointToBigXY(result)
}

func (stdCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	p, ok := bigXYToPointUnchecked(x1, y1)
	if !ok {
		return new(big.Int), new(big.Int)
	}
	result := Infinity().Double(p)
	return pointToBigXY(result)
}

func (stdCurve) ScalarMult(x1, y1 *big.Int, k []byte) (*big.Int, *big.Int) {
	p, ok := bigXYToPointUnchecked(x1, y1)
	if !ok {
		return new(big.Int), new(big.Int)
	}
	result := Infinity().ScalarMult(bytesToScalar(k), p)
	return pointToBigXY(result)
}

func (stdCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	result := Infinity().ScalarMult(bytesToScalar(k), Generator())
	return pointToBigXY(result)
}

func bytesToScalar(k []byte) *scalar.Scalar {
	s := scalar.Zero()
	kBytes := make([]byte, 32)
	if len(k) <= 32 {
		copy(kBytes[32-len(k):], k)
	} else {
		copy(kBytes, k[len(k)-32:])
	}
	s.SetBytes(kBytes)
	return s
}

func bigXYToPointUnchecked(x, y *big.Int) (*Point, bool) {
	if x == nil || y == nil {
		return nil, false
	}
	xField, ok := fieldValFromBigInt(x)
	if !ok {
		return nil, false
	}
	yField, ok := fieldValFromBigInt(y)
	if !ok {
		return nil, false
	}
	return NewPoint(xField, yField), true
}

func pointToBigXY(p *Point) (*big.Int, *big.Int) {
	if p.IsInfinity() {
		return new(big.Int), new(big.Int)
	}
	return bigIntFromFieldVal(p.x), bigIntFromFieldVal(p.y)
}
