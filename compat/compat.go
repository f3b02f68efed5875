// Package compat adapts this module's signing and recovery primitives to
// the Ethereum-style compact signature convention: 65 bytes of
// [R || S || V] with V = 27+recId, rather than Bitcoin's header-byte
// convention that also folds in the compression flag (see package
// message). It is a thin shim over ecdsa and recovery for callers that
// need to interoperate with that wire format specifically.
package compat

import (
	"crypto/ecdsa"
	"errors"

	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/recovery"
	"github.com/GIMICI/eckey/scalar"
)

// ErrNotSelfRecoverable is returned by SignCompact in the situation the
// ECDSA engine considers a bug: a signature that cannot recover back to
// the public key that produced it.
var ErrNotSelfRecoverable = errors.New("compat: signature does not recover to its own public key")

// SignCompact signs msgHash with d and returns the 65-byte
// [R || S || V] compact signature, V = 27+recId, normalizing to low-s
// first since compact/Ethereum-style signatures are expected canonical.
func SignCompact(d *scalar.Scalar, pubkey *group.Point, msgHash []byte) ([]byte, error) {
	sig, err := stdecdsa.Sign(d, msgHash)
	if err != nil {
		return nil, err
	}
	sig = sig.NormalizeLowS()

	recID, err := stdecdsa.RecoveryID(pubkey, sig.R(), sig.S(), msgHash)
	if err != nil {
		return nil, ErrNotSelfRecoverable
	}

	out := make([]byte, 65)
	copy(out[:32], sig.R().Bytes())
	copy(out[32:64], sig.S().Bytes())
	out[64] = byte(27 + recID)
	return out, nil
}

// RecoverCompact recovers the public key point from a 65-byte
// [R || S || V] compact signature.
func RecoverCompact(msgHash, sig []byte) (*group.Point, error) {
	pubBytes, err := recovery.RecoverPubkey(msgHash, sig)
	if err != nil {
		return nil, err
	}
	return group.DecodeSEC1(append([]byte{0x04}, pubBytes...))
}

// RecoverStdPublicKey recovers a standard library *ecdsa.PublicKey,
// matching go-ethereum's crypto.SigToPub.
func RecoverStdPublicKey(msgHash, sig []byte) (*ecdsa.PublicKey, error) {
	return recovery.SigToECDSA(msgHash, sig)
}

// RecoverUncompressedBytes recovers the 65-byte uncompressed public key
// (0x04 || X || Y), matching go-ethereum's crypto.RecoverPubkey.
func RecoverUncompressedBytes(msgHash, sig []byte) ([]byte, error) {
	pubBytes, err := recovery.RecoverPubkey(msgHash, sig)
	if err != nil {
		return nil, err
	}
	return append([]byte{0x04}, pubBytes...), nil
}
