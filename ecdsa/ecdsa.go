// Package ecdsa implements ECDSA signing, verification and SEC1 public
// key recovery over secp256k1, with nonces derived deterministically per
// RFC 6979 rather than drawn from a random source.
package ecdsa

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

// Signature holds the (r, s) pair produced by Sign.
type Signature struct {
	r *scalar.Scalar
	s *scalar.Scalar
}

var (
	ErrInvalidSignature  = errors.New("invalid ecdsa signature")
	ErrInvalidMessage    = errors.New("invalid message")
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
)

// Sign produces an ECDSA signature over a 32-byte message hash using a
// nonce derived deterministically from privkey and msgHash per RFC 6979.
func Sign(privkey *scalar.Scalar, msgHash []byte) (*Signature, error) {
	if len(msgHash) != 32 {
		return nil, ErrInvalidMessage
	}
	if privkey.IsZero() {
		return nil, ErrInvalidPrivateKey
	}

	e := scalar.Zero()
	if err := e.SetBytesStrict(msgHash); err != nil {
		return nil, ErrInvalidMessage
	}

	k, err := generateNonce(privkey, msgHash)
	if err != nil {
		return nil, err
	}

	R := group.Infinity().ScalarMult(k, group.Generator())
	if R.IsInfinity() {
		return nil, errors.New("invalid nonce")
	}

	r := scalar.Zero()
	r.SetBytes(R.X().Bytes())

	rd := scalar.Zero().Mul(r, privkey)
	ePlusRd := scalar.Zero().Add(e, rd)
	kInv := scalar.Zero().Inverse(k)
	s := scalar.Zero().Mul(kInv, ePlusRd)

	// s is returned as computed, without low-s normalization: some call
	// sites (e.g. reproducing a peer's raw signature) need the exact
	// RFC 6979 value. Callers that want a canonical low-s signature call
	// Signature.NormalizeLowS explicitly.
	return &Signature{r: r, s: s}, nil
}

// Verify reports whether sig is a valid signature over msgHash by the
// private key behind pubkey.
func Verify(pubkey *group.Point, msgHash []byte, sig *Signature) bool {
	if len(msgHash) != 32 {
		return false
	}
	if pubkey.IsInfinity() {
		return false
	}
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}

	e := scalar.Zero()
	if err := e.SetBytesStrict(msgHash); err != nil {
		return false
	}

	sInv := scalar.Zero().Inverse(sig.s)
	if sInv.IsZero() {
		return false
	}

	u1 := scalar.Zero().Mul(e, sInv)
	u2 := scalar.Zero().Mul(sig.r, sInv)

	u1G := group.Infinity().ScalarMult(u1, group.Generator())
	u2P := group.Infinity().ScalarMult(u2, pubkey)
	R := group.Infinity().Add(u1G, u2P)
	if R.IsInfinity() {
		return false
	}

	rCheck := scalar.Zero()
	rCheck.SetBytes(R.X().Bytes())

	return rCheck.Equal(sig.r)
}

// hmacStep computes HMAC-SHA256(key, data), the primitive RFC 6979's
// nonce generation repeats at every step.
func hmacStep(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// generateNonce implements RFC 6979 section 3.2 steps a-g for HMAC-SHA256,
// using the private key and message hash as V0/K0's input material, and
// handing off to generateNonceCandidate for the final search (step h).
func generateNonce(privkey *scalar.Scalar, msgHash []byte) (*scalar.Scalar, error) {
	privkeyBytes := privkey.Bytes()

	V := make([]byte, 32)
	for i := range V {
		V[i] = 0x01
	}
	K := make([]byte, 32)

	data := make([]byte, 0, len(V)+1+len(privkeyBytes)+len(msgHash))
	data = append(data, V...)
	data = append(data, 0x00)
	data = append(data, privkeyBytes...)
	data = append(data, msgHash...)
	K = hmacStep(K, data)
	V = hmacStep(K, V)

	data = data[:0]
	data = append(data, V...)
	data = append(data, 0x01)
	data = append(data, privkeyBytes...)
	data = append(data, msgHash...)
	K = hmacStep(K, data)
	V = hmacStep(K, V)

	return generateNonceCandidate(K, V)
}

// generateNonceCandidate implements RFC 6979 step h: repeatedly derive T
// from K/V until a candidate lands strictly inside [1, n-1].
func generateNonceCandidate(K, V []byte) (*scalar.Scalar, error) {
	for i := 0; i < 1000; i++ {
		V = hmacStep(K, V)
		T := V

		if t := new(big.Int).SetBytes(T); t.Sign() > 0 && t.Cmp(curveOrder) < 0 {
			k := scalar.Zero()
			if err := k.SetBytesStrict(T); err == nil {
				return k, nil
			}
		}

		K = hmacStep(K, append(append(make([]byte, 0, len(V)+1), V...), 0x00))
		V = hmacStep(K, V)
	}

	return nil, errors.New("failed to generate valid nonce after 1000 attempts")
}

// SignatureFromBytes decodes a 64-byte (r || s) signature.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, ErrInvalidSignature
	}

	r := scalar.Zero()
	s := scalar.Zero()

	if err := r.SetBytesStrict(b[:32]); err != nil {
		return nil, ErrInvalidSignature
	}
	if err := s.SetBytesStrict(b[32:]); err != nil {
		return nil, ErrInvalidSignature
	}

	if r.IsZero() || s.IsZero() {
		return nil, ErrInvalidSignature
	}

	return &Signature{r: r, s: s}, nil
}

// Bytes returns sig as a 64-byte (r || s) encoding.
func (sig *Signature) Bytes() []byte {
	result := make([]byte, 64)
	copy(result[:32], sig.r.Bytes())
	copy(result[32:], sig.s.Bytes())
	return result
}

// R returns the signature's r component.
func (sig *Signature) R() *scalar.Scalar {
	return sig.r
}

// S returns the signature's s component.
func (sig *Signature) S() *scalar.Scalar {
	return sig.s
}
