package group

import (
	"errors"
	"math/big"

	"github.com/GIMICI/eckey/field"
)

// ErrInvalidPointEncoding is returned when a byte string is not a valid
// SEC1 public-key encoding accepted by this package.
var ErrInvalidPointEncoding = errors.New("group: invalid point encoding")

// SetXY sets the point to the given affine coordinates without an on-curve
// check, for callers that have already validated the coordinates.
func (p *Point) SetXY(x, y *field.FieldVal) *Point {
	p.x = x
	p.y = y
	p.infinity = false
	return p
}

// BytesUncompressed returns the uncompressed SEC1 encoding of the point:
// 0x04 followed by the 32-byte X and 32-byte Y coordinates. The point at
// infinity encodes as a 0x04 tag followed by 64 zero bytes, mirroring Bytes'
// treatment of the compressed form; callers that must reject infinity
// should check IsInfinity first.
func (p *Point) BytesUncompressed() []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	if p.infinity {
		return out
	}
	copy(out[1:33], p.x.Bytes())
	copy(out[33:65], p.y.Bytes())
	return out
}

// DecodeSEC1 parses a public-key point from its SEC1 encoding, accepting
// only the compressed (33-byte, 0x02/0x03 prefix) and uncompressed (65-byte,
// 0x04 prefix) forms. Hybrid (0x06/0x07) and point-at-infinity (a leading
// 0x00 byte) encodings are rejected: Bitcoin never puts the point at
// infinity on the wire as a public key, and no deployed wallet emits hybrid
// points.
func DecodeSEC1(b []byte) (*Point, error) {
	switch len(b) {
	case 33:
		return decodeCompressedSEC1(b)
	case 65:
		return decodeUncompressedSEC1(b)
	default:
		return nil, ErrInvalidPointEncoding
	}
}

func decodeCompressedSEC1(b []byte) (*Point, error) {
	if b[0] != 0x02 && b[0] != 0x03 {
		return nil, ErrInvalidPointEncoding
	}

	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(secp256k1Prime) >= 0 {
		return nil, ErrInvalidPointEncoding
	}

	y, ok := sqrtCurveRHS(x)
	if !ok {
		return nil, ErrInvalidPointEncoding
	}
	if uint(y.Bit(0)) != uint(b[0]&1) {
		y.Sub(secp256k1Prime, y)
	}

	return bigXYToPoint(x, y)
}

func decodeUncompressedSEC1(b []byte) (*Point, error) {
	if b[0] != 0x04 {
		return nil, ErrInvalidPointEncoding
	}

	x := field.Zero()
	y := field.Zero()
	if !x.SetBytes(b[1:33]) || !y.SetBytes(b[33:65]) {
		return nil, ErrInvalidPointEncoding
	}

	p := NewPoint(x, y)
	if !p.IsOnCurve() {
		return nil, ErrInvalidPointEncoding
	}
	return p, nil
}

// sqrtCurveRHS computes a square root of x^3+7 mod p, returning ok=false if
// x does not correspond to a point on the curve.
func sqrtCurveRHS(x *big.Int) (*big.Int, bool) {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, secp256k1B)
	rhs.Mod(rhs, secp256k1Prime)

	y := new(big.Int).Exp(rhs, secp256k1SqrtExp, secp256k1Prime)
	check := new(big.Int).Mul(y, y)
	check.Mod(check, secp256k1Prime)
	if check.Cmp(rhs) != 0 {
		return nil, false
	}
	return y, true
}

func bigXYToPoint(x, y *big.Int) (*Point, error) {
	xField, ok := fieldValFromBigInt(x)
	if !ok {
		return nil, ErrInvalidPointEncoding
	}
	yField, ok := fieldValFromBigInt(y)
	if !ok {
		return nil, ErrInvalidPointEncoding
	}
	p := NewPoint(xField, yField)
	if !p.IsOnCurve() {
		return nil, ErrInvalidPointEncoding
	}
	return p, nil
}

// EncodeCompressed returns the 33-byte SEC1 compressed encoding of p. The
// point at infinity has no compressed SEC1 form.
func EncodeCompressed(p *Point) ([]byte, error) {
	if p.IsInfinity() {
		return nil, ErrInvalidPointEncoding
	}
	return p.Bytes(), nil
}

// EncodeUncompressed returns the 65-byte SEC1 uncompressed encoding of p.
// The point at infinity has no uncompressed SEC1 form.
func EncodeUncompressed(p *Point) ([]byte, error) {
	if p.IsInfinity() {
		return nil, ErrInvalidPointEncoding
	}
	return p.BytesUncompressed(), nil
}

// SetCompressed reconstructs a point from a candidate x-coordinate and the
// parity of its y-coordinate, as required when rebuilding R during ECDSA
// public-key recovery (SEC1 v2 §4.1.6). It reports false if x does not lie
// on the curve or is not a valid field element.
func (p *Point) SetCompressed(xBytes []byte, oddY bool) bool {
	x := new(big.Int).SetBytes(xBytes)
	if x.Cmp(secp256k1Prime) >= 0 {
		return false
	}

	y, ok := sqrtCurveRHS(x)
	if !ok {
		return false
	}
	if (y.Bit(0) == 1) != oddY {
		y.Sub(secp256k1Prime, y)
	}

	xField, ok := fieldValFromBigInt(x)
	if !ok {
		return false
	}
	yField, ok := fieldValFromBigInt(y)
	if !ok {
		return false
	}

	p.x = xField
	p.y = yField
	p.infinity = false
	return true
}
