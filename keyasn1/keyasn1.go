// Package keyasn1 encodes and decodes the OpenSSL EC_PRIVATEKEY structure:
// SEQUENCE { INTEGER version, OCTET STRING privateKey, [0] curve OID,
// [1] public key bit string }. This is the private-key wire format that
// OpenSSL's PEM "EC PRIVATE KEY" blocks carry for a named curve.
package keyasn1

import (
	"encoding/asn1"
	"errors"

	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

// secp256k1OID is the named-curve object identifier 1.3.132.0.10.
var secp256k1OID = asn1.ObjectIdentifier{1, 3, 132, 0, 10}

type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"explicit,tag:1"`
}

// Common errors
var (
	ErrBadVersion          = errors.New("keyasn1: unsupported EC_PRIVATEKEY version")
	ErrBadCurve            = errors.New("keyasn1: unexpected curve OID")
	ErrBadPrivateKeyLength = errors.New("keyasn1: private key octet string must be 1-32 bytes")
	ErrBadPublicKeyLength  = errors.New("keyasn1: public key bit string must be 33 or 65 bytes")
	ErrBadPublicKeyPrefix  = errors.New("keyasn1: public key prefix byte out of range")
	ErrPublicKeyMismatch   = errors.New("keyasn1: decoded public key does not match d*G")
	ErrTrailingData        = errors.New("keyasn1: trailing bytes after EC_PRIVATEKEY sequence")
	ErrInvalidScalar       = errors.New("keyasn1: private key octets are not a valid scalar")
)

// Encode produces the DER encoding of d and its SEC1-encoded public point
// pubBytes (33 or 65 bytes, whichever compression the caller wants
// persisted).
func Encode(d *scalar.Scalar, pubBytes []byte) ([]byte, error) {
	if len(pubBytes) != 33 && len(pubBytes) != 65 {
		return nil, ErrBadPublicKeyLength
	}

	key := ecPrivateKey{
		Version:       1,
		PrivateKey:    d.Bytes(),
		NamedCurveOID: secp256k1OID,
		PublicKey:     asn1.BitString{Bytes: pubBytes, BitLength: len(pubBytes) * 8},
	}
	return asn1.Marshal(key)
}

// Decode parses der, validates it strictly, and recomputes Q = d·G,
// failing with ErrPublicKeyMismatch if the recomputed point disagrees with
// the embedded public key bit string.
func Decode(der []byte) (d *scalar.Scalar, pubBytes []byte, err error) {
	var key ecPrivateKey
	rest, err := asn1.Unmarshal(der, &key)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) != 0 {
		return nil, nil, ErrTrailingData
	}
	if key.Version != 1 {
		return nil, nil, ErrBadVersion
	}
	if !key.NamedCurveOID.Equal(secp256k1OID) {
		return nil, nil, ErrBadCurve
	}
	if len(key.PrivateKey) == 0 || len(key.PrivateKey) > 32 {
		return nil, nil, ErrBadPrivateKeyLength
	}

	pub := key.PublicKey.Bytes
	switch len(pub) {
	case 33:
		if pub[0] != 2 && pub[0] != 3 {
			return nil, nil, ErrBadPublicKeyPrefix
		}
	case 65:
		if pub[0] != 4 {
			return nil, nil, ErrBadPublicKeyPrefix
		}
	default:
		return nil, nil, ErrBadPublicKeyLength
	}

	dScalar := scalar.Zero()
	if err := dScalar.SetBytesStrict(pad32(key.PrivateKey)); err != nil || dScalar.IsZero() || !dScalar.IsLessThanOrder() {
		return nil, nil, ErrInvalidScalar
	}

	Q := group.Infinity().ScalarMult(dScalar, group.Generator())
	var recomputed []byte
	if len(pub) == 33 {
		recomputed, err = group.EncodeCompressed(Q)
	} else {
		recomputed, err = group.EncodeUncompressed(Q)
	}
	if err != nil || !equalBytes(recomputed, pub) {
		return nil, nil, ErrPublicKeyMismatch
	}

	return dScalar, pub, nil
}

func pad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
