package scalar

import "math/big"

// Inverse sets s = a^(-1) mod n and returns s. ecdsa.Sign and
// ecdsa.Verify both call this: the former to turn a nonce into s, the
// latter to turn the signature's s back into a verification multiplier.
func (s *Scalar) Inverse(a *Scalar) *Scalar {
	if a.IsZero() {
		*s = *Zero()
		return s
	}

	inv := new(big.Int).ModInverse(a.bigInt(), curveOrderBig)
	if inv == nil {
		*s = *Zero()
		return s
	}

	s.fromBig(inv)
	return s
}
