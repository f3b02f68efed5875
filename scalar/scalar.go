// Package scalar implements arithmetic modulo the secp256k1 curve order
// n. Scalars are private keys, nonces, and the r/s components of an
// ECDSA signature — every Scalar holds a value already reduced into
// [0, n). See package ecdsa, which builds signatures out of Scalars, and
// package group, whose ScalarMult takes one as the multiplier.
package scalar

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"math/big"
)

// n = 0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141
const (
	curveOrder0 = 0xD0364141
	curveOrder1 = 0xBFD25E8C
	curveOrder2 = 0xAF48A03B
	curveOrder3 = 0xBAAEDCE6
	curveOrder4 = 0xFFFFFFFE
)

var (
	curveOrderBytes = []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
		0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
	}
	curveOrderBig = new(big.Int).SetBytes(curveOrderBytes)
)

// ErrInvalidLength is returned by SetBytesStrict when its input isn't
// exactly 32 bytes.
var ErrInvalidLength = errors.New("scalar: value must be exactly 32 bytes")

// Scalar is an element of Z/nZ, stored as 8 32-bit limbs, least
// significant first.
type Scalar struct {
	n [8]uint32
}

// Zero returns the additive identity.
func Zero() *Scalar {
	return &Scalar{}
}

// One returns the multiplicative identity.
func One() *Scalar {
	one := &Scalar{}
	oneBytes := make([]byte, 32)
	oneBytes[31] = 1
	one.SetBytes(oneBytes)
	return one
}

// SetBytes loads s from a 32-byte big-endian encoding, reducing modulo
// n, and returns whether the length was valid. Prefer SetBytesStrict for
// new call sites that want a typed error instead of a bare bool.
func (s *Scalar) SetBytes(b []byte) bool {
	if len(b) != 32 {
		return false
	}

	value := new(big.Int).SetBytes(b)
	value.Mod(value, curveOrderBig)
	bytes := padTo32(value.Bytes())
	for i := 0; i < 8; i++ {
		offset := 28 - i*4
		s.n[i] = binary.BigEndian.Uint32(bytes[offset : offset+4])
	}
	return true
}

// SetBytesStrict is SetBytes for callers that want to propagate a typed
// error instead of checking a bare bool, matching the rest of this
// module's error conventions.
func (s *Scalar) SetBytesStrict(b []byte) error {
	if !s.SetBytes(b) {
		return ErrInvalidLength
	}
	return nil
}

// Bytes returns s as a 32-byte big-endian encoding.
func (s *Scalar) Bytes() []byte {
	b := make([]byte, 32)
	for i := 0; i < 8; i++ {
		offset := 28 - i*4
		binary.BigEndian.PutUint32(b[offset:offset+4], s.n[i])
	}
	return b
}

func padTo32(b []byte) []byte {
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	if len(b) == 32 {
		return b
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func (s *Scalar) bigInt() *big.Int {
	return new(big.Int).SetBytes(s.Bytes())
}

func (s *Scalar) fromBig(v *big.Int) {
	if v == nil {
		*s = *Zero()
		return
	}
	res := new(big.Int).Mod(v, curveOrderBig)
	if res.Sign() < 0 {
		res.Add(res, curveOrderBig)
	}
	bytes := padTo32(res.Bytes())
	if !s.SetBytes(bytes) {
		*s = *Zero()
	}
}

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool {
	return s.n[0] == 0 && s.n[1] == 0 && s.n[2] == 0 && s.n[3] == 0 &&
		s.n[4] == 0 && s.n[5] == 0 && s.n[6] == 0 && s.n[7] == 0
}

// Equal reports whether s and other hold the same value, in constant
// time: scalars are private keys and nonces, so a data-dependent
// comparison here would leak timing. SecureEqual is an alias kept for
// call sites that want to say explicitly that the comparison matters.
func (s *Scalar) Equal(other *Scalar) bool {
	return subtle.ConstantTimeCompare(s.Bytes(), other.Bytes()) == 1
}

// SecureEqual is Equal; see its doc comment.
func (s *Scalar) SecureEqual(other *Scalar) bool {
	return s.Equal(other)
}

// Clear zeroes s in place, so a defer can scrub a private scalar from
// memory once a caller is done with it.
func (s *Scalar) Clear() {
	for i := range s.n {
		s.n[i] = 0
	}
}

// Add sets s = a + b mod n and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	res := new(big.Int).Add(a.bigInt(), b.bigInt())
	res.Mod(res, curveOrderBig)
	s.fromBig(res)
	return s
}

// Sub sets s = a - b mod n and returns s.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	res := new(big.Int).Sub(a.bigInt(), b.bigInt())
	res.Mod(res, curveOrderBig)
	if res.Sign() < 0 {
		res.Add(res, curveOrderBig)
	}
	s.fromBig(res)
	return s
}

// Mul sets s = a * b mod n and returns s.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	res := new(big.Int).Mul(a.bigInt(), b.bigInt())
	res.Mod(res, curveOrderBig)
	s.fromBig(res)
	return s
}

// Square sets s = a^2 mod n and returns s.
func (s *Scalar) Square(a *Scalar) *Scalar {
	return s.Mul(a, a)
}

// Negate sets s = -a mod n and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	if a.IsZero() {
		*s = *Zero()
		return s
	}

	res := new(big.Int).Neg(a.bigInt())
	res.Mod(res, curveOrderBig)
	if res.Sign() < 0 {
		res.Add(res, curveOrderBig)
	}
	s.fromBig(res)
	return s
}

// GetBits returns count bits of s starting at bit offset (bit 0 is the
// least significant), or 0 when count is 0 or above 32 or offset is 256
// or more.
func (s *Scalar) GetBits(offset, count uint) uint32 {
	if count == 0 || count > 32 || offset >= 256 {
		return 0
	}

	limbIndex := offset / 32
	bitOffset := offset % 32

	if limbIndex >= 8 {
		return 0
	}

	result := s.n[limbIndex] >> bitOffset

	if bitOffset+count > 32 && limbIndex+1 < 8 {
		bitsFromNext := count - (32 - bitOffset)
		nextBits := s.n[limbIndex+1] & ((1 << bitsFromNext) - 1)
		result |= nextBits << (32 - bitOffset)
	}

	mask := (uint32(1) << count) - 1
	return result & mask
}

// LessThan returns true if s < other.
func (s *Scalar) LessThan(other *Scalar) bool {
	for i := 7; i >= 0; i-- {
		if s.n[i] < other.n[i] {
			return true
		}
		if s.n[i] > other.n[i] {
			return false
		}
	}
	return false
}

// GreaterThan returns true if s > other.
func (s *Scalar) GreaterThan(other *Scalar) bool {
	return other.LessThan(s)
}

// LessThanOrEqual returns true if s <= other.
func (s *Scalar) LessThanOrEqual(other *Scalar) bool {
	return s.LessThan(other) || s.Equal(other)
}

// GreaterThanOrEqual returns true if s >= other.
func (s *Scalar) GreaterThanOrEqual(other *Scalar) bool {
	return s.GreaterThan(other) || s.Equal(other)
}

// IsLessThanOrder returns true if s < n. Keypair construction rejects
// any candidate scalar that fails this check before deriving a point
// from it.
func (s *Scalar) IsLessThanOrder() bool {
	for i := 7; i >= 0; i-- {
		var order uint32
		switch i {
		case 0:
			order = curveOrder0
		case 1:
			order = curveOrder1
		case 2:
			order = curveOrder2
		case 3:
			order = curveOrder3
		case 4:
			order = curveOrder4
		default:
			order = 0xFFFFFFFF
		}

		if s.n[i] > order {
			return false
		}
		if s.n[i] < order {
			return true
		}
	}
	return false
}
