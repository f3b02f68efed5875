// Package field implements modular arithmetic over the secp256k1 base
// field Fp, p = 2^256 - 2^32 - 977. Every FieldVal holds a value already
// reduced into [0, p); operations take already-reduced operands and
// produce already-reduced results, so callers never need to reduce by
// hand. This is the field the curve's x and y coordinates live in — see
// package group, which builds points out of pairs of FieldVals.
package field

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"math/big"
)

// p = 0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F
var (
	fieldPrimeBytes = []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFE, 0xFF, 0xFF, 0xFC, 0x2F,
	}
	fieldPrimeBig = new(big.Int).SetBytes(fieldPrimeBytes)
)

// ErrInvalidLength is returned by SetBytesStrict when its input isn't
// exactly 32 bytes.
var ErrInvalidLength = errors.New("field: value must be exactly 32 bytes")

// FieldVal is an element of Fp, stored as 8 32-bit limbs, least
// significant first.
type FieldVal struct {
	n [8]uint32
}

// Zero returns the additive identity.
func Zero() *FieldVal {
	return &FieldVal{}
}

// One returns the multiplicative identity.
func One() *FieldVal {
	one := &FieldVal{}
	oneBytes := make([]byte, 32)
	oneBytes[31] = 1
	one.SetBytes(oneBytes)
	return one
}

// SetBytes loads f from a 32-byte big-endian encoding, reducing modulo p,
// and returns whether the length was valid. Prefer SetBytesStrict for new
// call sites that want a typed error instead of a bare bool.
func (f *FieldVal) SetBytes(b []byte) bool {
	if len(b) != 32 {
		return false
	}

	value := new(big.Int).SetBytes(b)
	value.Mod(value, fieldPrimeBig)
	bytes := padTo32(value.Bytes())
	for i := 0; i < 8; i++ {
		offset := 28 - i*4
		f.n[i] = binary.BigEndian.Uint32(bytes[offset : offset+4])
	}
	return true
}

// SetBytesStrict is SetBytes for callers that want to propagate a typed
// error instead of checking a bare bool, matching the rest of this
// module's error conventions.
func (f *FieldVal) SetBytesStrict(b []byte) error {
	if !f.SetBytes(b) {
		return ErrInvalidLength
	}
	return nil
}

// Bytes returns f as a 32-byte big-endian encoding.
func (f *FieldVal) Bytes() []byte {
	b := make([]byte, 32)
	for i := 0; i < 8; i++ {
		offset := 28 - i*4
		binary.BigEndian.PutUint32(b[offset:offset+4], f.n[i])
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

func (f *FieldVal) bigInt() *big.Int {
	return new(big.Int).SetBytes(f.Bytes())
}

func (f *FieldVal) fromBig(v *big.Int) {
	if v == nil {
		*f = *Zero()
		return
	}
	res := new(big.Int).Mod(v, fieldPrimeBig)
	if res.Sign() < 0 {
		res.Add(res, fieldPrimeBig)
	}
	bytes := padTo32(res.Bytes())
	if !f.SetBytes(bytes) {
		*f = *Zero()
	}
}

// IsZero reports whether f is the additive identity.
func (f *FieldVal) IsZero() bool {
	return f.n[0] == 0 && f.n[1] == 0 && f.n[2] == 0 && f.n[3] == 0 &&
		f.n[4] == 0 && f.n[5] == 0 && f.n[6] == 0 && f.n[7] == 0
}

// Equal reports whether f and other hold the same value, in constant
// time: field values derive from signatures and private scalars, so a
// data-dependent comparison here would leak timing.
func (f *FieldVal) Equal(other *FieldVal) bool {
	return subtle.ConstantTimeCompare(f.Bytes(), other.Bytes()) == 1
}

// Add sets f = a + b mod p and returns f.
func (f *FieldVal) Add(a, b *FieldVal) *FieldVal {
	res := new(big.Int).Add(a.bigInt(), b.bigInt())
	res.Mod(res, fieldPrimeBig)
	f.fromBig(res)
	return f
}

// Sub sets f = a - b mod p and returns f.
func (f *FieldVal) Sub(a, b *FieldVal) *FieldVal {
	res := new(big.Int).Sub(a.bigInt(), b.bigInt())
	res.Mod(res, fieldPrimeBig)
	if res.Sign() < 0 {
		res.Add(res, fieldPrimeBig)
	}
	f.fromBig(res)
	return f
}

// Mul sets f = a * b mod p and returns f.
func (f *FieldVal) Mul(a, b *FieldVal) *FieldVal {
	res := new(big.Int).Mul(a.bigInt(), b.bigInt())
	res.Mod(res, fieldPrimeBig)
	f.fromBig(res)
	return f
}

// Square sets f = a^2 mod p and returns f.
func (f *FieldVal) Square(a *FieldVal) *FieldVal {
	return f.Mul(a, a)
}

// Negate sets f = -a mod p and returns f.
func (f *FieldVal) Negate(a *FieldVal) *FieldVal {
	if a.IsZero() {
		*f = *Zero()
		return f
	}

	res := new(big.Int).Neg(a.bigInt())
	res.Mod(res, fieldPrimeBig)
	if res.Sign() < 0 {
		res.Add(res, fieldPrimeBig)
	}
	f.fromBig(res)
	return f
}
