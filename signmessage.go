package eckey

import (
	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/message"
)

// keypairSigner adapts Keypair to message.Signer without the message
// package needing to import eckey (which imports message), and without
// Keypair needing to satisfy the interface with its own exported method
// set (SignDigest already takes a variadic aesKey that message.Signer
// doesn't know about).
type keypairSigner struct {
	k      *Keypair
	aesKey []byte
}

func (s keypairSigner) SignDigest(digest []byte) (*stdecdsa.Signature, error) {
	if len(s.aesKey) == 0 {
		return s.k.SignDigest(digest)
	}
	return s.k.SignDigest(digest, s.aesKey)
}

func (s keypairSigner) PubPoint() (*group.Point, error) {
	return s.k.PubPoint()
}

func (s keypairSigner) Compressed() bool {
	return s.k.IsCompressed()
}

// SignMessage signs text under magic (e.g. message.BitcoinMagic) with this
// keypair, returning the base64 wire form defined in spec.md §4.6. If the
// keypair is encrypted, aesKey must be supplied.
func (k *Keypair) SignMessage(magic, text string, aesKey ...[]byte) (string, error) {
	var key []byte
	if len(aesKey) > 0 {
		key = aesKey[0]
	}
	sig, err := message.Sign(magic, text, keypairSigner{k: k, aesKey: key})
	if err != nil {
		return "", newKeyError(KindBadInput, err)
	}
	return sig, nil
}

// RecoverMessageSigner recovers the pub-only keypair that produced sigB64
// over text under magic.
func RecoverMessageSigner(magic, text, sigB64 string) (*Keypair, error) {
	Q, compressed, err := message.RecoverSigner(magic, text, sigB64)
	if err != nil {
		return nil, newKeyError(KindRecoveryImpossible, err)
	}
	return FromPublicOnly(Q, compressed)
}

// VerifyMessage reports whether sigB64 is a valid signature over text by
// the holder of this keypair's public point, under the given network
// magic.
func (k *Keypair) VerifyMessage(magic, text, sigB64 string) (bool, error) {
	pub, err := k.PubPoint()
	if err != nil {
		return false, err
	}
	return message.VerifyMessage(magic, text, sigB64, pub), nil
}
