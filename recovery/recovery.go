// Package recovery recovers a public key from an Ethereum-style compact
// signature: 65 bytes of [R || S || V], where V is a recovery id in either
// the raw 0-3 range or the legacy 27-30 range.
package recovery

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

// RecoverPubkey recovers the public key from a signature and message hash.
// sig must be 65 bytes: [R || S || V] where V is a recovery id (0-3 or 27-30).
// The returned bytes are the 64-byte uncompressed point (X || Y), without
// the leading 0x04 tag, matching geth's wire convention.
func RecoverPubkey(msgHash, sig []byte) ([]byte, error) {
	if len(msgHash) != 32 {
		return nil, errors.New("invalid message hash length")
	}
	if len(sig) != 65 {
		return nil, errors.New("invalid signature length")
	}

	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 3 {
		return nil, errors.New("invalid recovery id")
	}

	r := scalar.Zero()
	s := scalar.Zero()
	if err := r.SetBytesStrict(sig[:32]); err != nil || r.IsZero() {
		return nil, errors.New("invalid r value")
	}
	if err := s.SetBytesStrict(sig[32:64]); err != nil || s.IsZero() {
		return nil, errors.New("invalid s value")
	}

	pubPoint, err := stdecdsa.Recover(int(v), r, s, msgHash)
	if err != nil {
		return nil, err
	}

	out := pubPoint.BytesUncompressed()
	return out[1:], nil
}

// SigToECDSA recovers the ECDSA public key from a signature, returned as a
// standard library *ecdsa.PublicKey on the curve returned by Curve().
func SigToECDSA(msgHash, sig []byte) (*ecdsa.PublicKey, error) {
	pubBytes, err := RecoverPubkey(msgHash, sig)
	if err != nil {
		return nil, err
	}
	if len(pubBytes) != 64 {
		return nil, errors.New("invalid recovered public key")
	}

	point, err := group.DecodeSEC1(append([]byte{0x04}, pubBytes...))
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{
		Curve: group.Curve(),
		X:     new(big.Int).SetBytes(point.X().Bytes()),
		Y:     new(big.Int).SetBytes(point.Y().Bytes()),
	}, nil
}
