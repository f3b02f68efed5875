package ecdsa

import (
	"encoding/asn1"
	"math/big"

	"github.com/GIMICI/eckey/scalar"
)

// curveOrder and curveOrderHalf mirror scalar's hardcoded secp256k1 group
// order; they are needed here as big.Int values for DER round-tripping and
// the low-s canonicalization check (BIP-62).
var (
	curveOrder = new(big.Int).SetBytes([]byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
		0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
	})
	curveOrderHalf = new(big.Int).Rsh(curveOrder, 1)
)

// asn1Signature mirrors the two-INTEGER SEQUENCE that every ECDSA signature
// on the wire actually is.
type asn1Signature struct {
	R *big.Int
	S *big.Int
}

// DER returns the ASN.1 DER encoding of sig: SEQUENCE { INTEGER r, INTEGER s },
// with each integer minimally encoded (a leading 0x00 byte only when the
// high bit of the value would otherwise be mistaken for a sign bit).
func (sig *Signature) DER() ([]byte, error) {
	return asn1.Marshal(asn1Signature{
		R: new(big.Int).SetBytes(sig.r.Bytes()),
		S: new(big.Int).SetBytes(sig.s.Bytes()),
	})
}

// SignatureFromDER parses a DER-encoded ECDSA signature, rejecting any
// encoding that isn't a minimal two-INTEGER SEQUENCE or that carries
// trailing bytes.
func SignatureFromDER(b []byte) (*Signature, error) {
	var parsed asn1Signature
	rest, err := asn1.Unmarshal(b, &parsed)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(rest) != 0 {
		return nil, ErrInvalidSignature
	}
	if parsed.R.Sign() <= 0 || parsed.S.Sign() <= 0 {
		return nil, ErrInvalidSignature
	}
	if parsed.R.Cmp(curveOrder) >= 0 || parsed.S.Cmp(curveOrder) >= 0 {
		return nil, ErrInvalidSignature
	}

	r := scalar.Zero()
	s := scalar.Zero()
	if err := r.SetBytesStrict(pad32(parsed.R.Bytes())); err != nil {
		return nil, ErrInvalidSignature
	}
	if err := s.SetBytesStrict(pad32(parsed.S.Bytes())); err != nil {
		return nil, ErrInvalidSignature
	}
	if r.IsZero() || s.IsZero() {
		return nil, ErrInvalidSignature
	}
	return &Signature{r: r, s: s}, nil
}

func pad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// IsLowS reports whether s is already at most half the curve order, the
// canonical form required by BIP-62-style strict signature validation.
func (sig *Signature) IsLowS() bool {
	return new(big.Int).SetBytes(sig.s.Bytes()).Cmp(curveOrderHalf) <= 0
}

// NormalizeLowS returns a signature with the same r and a canonical
// low-s value: if s is in the upper half of the curve order it is replaced
// by n-s, which is an equally valid signature for the same (r, e, pubkey)
// because ECDSA verification only depends on s through s and -s mod n.
// Signing never applies this automatically; callers opt in explicitly.
func (sig *Signature) NormalizeLowS() *Signature {
	if sig.IsLowS() {
		return &Signature{r: sig.r, s: sig.s}
	}
	negated := scalar.Zero().Sub(scalar.Zero(), sig.s)
	return &Signature{r: sig.r, s: negated}
}
