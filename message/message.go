// Package message implements Bitcoin's "magic-prefixed" text message
// signing format: a double-SHA256 digest over a varint-framed magic string
// and message, signed with ECDSA and wrapped in a 65-byte, base64-encoded
// envelope that also carries the recovery id and compression flag.
package message

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

// Signer is the capability message.Sign needs from a keypair. It is
// satisfied structurally so this package never has to import the keypair
// package (which in turn calls into this one).
type Signer interface {
	SignDigest(digest []byte) (*stdecdsa.Signature, error)
	PubPoint() (*group.Point, error)
	Compressed() bool
}

// Common errors
var (
	ErrInvalidEnvelope   = errors.New("message: signature envelope must be 65 bytes")
	ErrHeaderOutOfRange  = errors.New("message: header byte out of range [27,34]")
	ErrInvariantViolated = errors.New("message: no recovery id reproduced the signer's public key")
)

// Sign produces the base64 wire form of a signed message: header byte
// followed by 32-byte r and 32-byte s.
func Sign(magic, text string, signer Signer) (string, error) {
	digest := Digest(magic, text)

	sig, err := signer.SignDigest(digest)
	if err != nil {
		return "", err
	}
	sig = sig.NormalizeLowS()

	pub, err := signer.PubPoint()
	if err != nil {
		return "", err
	}

	recID, err := stdecdsa.RecoveryID(pub, sig.R(), sig.S(), digest)
	if err != nil {
		return "", ErrInvariantViolated
	}

	header := byte(27 + recID)
	if signer.Compressed() {
		header += 4
	}

	out := make([]byte, 65)
	out[0] = header
	copy(out[1:33], sig.R().Bytes())
	copy(out[33:65], sig.S().Bytes())

	return base64.StdEncoding.EncodeToString(out), nil
}

// RecoverSigner recovers the public point, and whether it was signed under
// a compressed key, from a message and its base64 signature envelope.
func RecoverSigner(magic, text, sigB64 string) (*group.Point, bool, error) {
	raw, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return nil, false, err
	}
	if len(raw) != 65 {
		return nil, false, ErrInvalidEnvelope
	}

	header := raw[0]
	if header < 27 || header > 34 {
		return nil, false, ErrHeaderOutOfRange
	}
	compressed := header >= 31
	if compressed {
		header -= 4
	}
	recID := int(header - 27)

	r := scalar.Zero()
	s := scalar.Zero()
	if err := r.SetBytesStrict(raw[1:33]); err != nil {
		return nil, false, ErrInvalidEnvelope
	}
	if err := s.SetBytesStrict(raw[33:65]); err != nil {
		return nil, false, ErrInvalidEnvelope
	}

	digest := Digest(magic, text)
	Q, err := stdecdsa.Recover(recID, r, s, digest)
	if err != nil {
		return nil, false, err
	}
	return Q, compressed, nil
}

// VerifyMessage reports whether sigB64 is a valid signature over text by
// the holder of pub, under the given network magic.
func VerifyMessage(magic, text, sigB64 string, pub *group.Point) bool {
	Q, _, err := RecoverSigner(magic, text, sigB64)
	if err != nil {
		return false
	}
	return Q.Equal(pub)
}

// Digest computes the double-SHA256 digest of the magic-prefixed signing
// payload: varint(len(magic)) || magic || varint(len(text)) || text.
func Digest(magic, text string) []byte {
	var buf bytes.Buffer
	writeVarInt(&buf, uint64(len(magic)))
	buf.WriteString(magic)
	writeVarInt(&buf, uint64(len(text)))
	buf.WriteString(text)

	first := sha256.Sum256(buf.Bytes())
	second := sha256.Sum256(first[:])
	return second[:]
}

// writeVarInt encodes n as a Bitcoin CompactSize integer.
func writeVarInt(buf *bytes.Buffer, n uint64) {
	switch {
	case n < 0xfd:
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(0xfd)
		buf.WriteByte(byte(n))
		buf.WriteByte(byte(n >> 8))
	case n <= 0xffffffff:
		buf.WriteByte(0xfe)
		for i := 0; i < 4; i++ {
			buf.WriteByte(byte(n >> (8 * i)))
		}
	default:
		buf.WriteByte(0xff)
		for i := 0; i < 8; i++ {
			buf.WriteByte(byte(n >> (8 * i)))
		}
	}
}

// BitcoinMagic is the network magic string used by the reference
// implementation's mainnet message-signing format.
const BitcoinMagic = "Bitcoin Signed Message:\n"
