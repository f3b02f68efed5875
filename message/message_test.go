package message

import (
	"testing"

	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

// fixedSigner implements Signer over a fixed scalar, mirroring what
// eckey.Keypair does without importing it (would create a cycle).
type fixedSigner struct {
	d          *scalar.Scalar
	compressed bool
}

func (s fixedSigner) SignDigest(digest []byte) (*stdecdsa.Signature, error) {
	return stdecdsa.Sign(s.d, digest)
}

func (s fixedSigner) PubPoint() (*group.Point, error) {
	return group.Infinity().ScalarMult(s.d, group.Generator()), nil
}

func (s fixedSigner) Compressed() bool {
	return s.compressed
}

func testSigner(compressed bool) fixedSigner {
	d := scalar.Zero()
	d.SetBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32})
	return fixedSigner{d: d, compressed: compressed}
}

func TestSignAndRecoverSigner(t *testing.T) {
	for _, compressed := range []bool{true, false} {
		signer := testSigner(compressed)

		sigB64, err := Sign(BitcoinMagic, "hello world", signer)
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}

		Q, gotCompressed, err := RecoverSigner(BitcoinMagic, "hello world", sigB64)
		if err != nil {
			t.Fatalf("RecoverSigner failed: %v", err)
		}
		if gotCompressed != compressed {
			t.Errorf("compression flag mismatch: got %v, want %v", gotCompressed, compressed)
		}

		want, _ := signer.PubPoint()
		if !Q.Equal(want) {
			t.Error("recovered point does not match signer's public point")
		}
	}
}

func TestVerifyMessage(t *testing.T) {
	signer := testSigner(true)
	sigB64, err := Sign(BitcoinMagic, "verify me", signer)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	pub, _ := signer.PubPoint()
	if !VerifyMessage(BitcoinMagic, "verify me", sigB64, pub) {
		t.Error("VerifyMessage should accept a valid signature")
	}
	if VerifyMessage(BitcoinMagic, "tampered", sigB64, pub) {
		t.Error("VerifyMessage should reject a signature over different text")
	}
}

func TestHeaderByteEncodesCompression(t *testing.T) {
	compressedSig, err := Sign(BitcoinMagic, "x", testSigner(true))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	uncompressedSig, err := Sign(BitcoinMagic, "x", testSigner(false))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if compressedSig == uncompressedSig {
		t.Error("compressed and uncompressed signatures should differ in header byte")
	}
}

func TestRecoverSignerRejectsBadEnvelope(t *testing.T) {
	if _, _, err := RecoverSigner(BitcoinMagic, "x", "not-base64!!"); err == nil {
		t.Error("expected error for non-base64 input")
	}
	if _, _, err := RecoverSigner(BitcoinMagic, "x", "QQ=="); err != ErrInvalidEnvelope {
		t.Errorf("expected ErrInvalidEnvelope for short input, got %v", err)
	}
}

func TestDigestVarIntFraming(t *testing.T) {
	short := Digest(BitcoinMagic, "a")
	long := Digest(BitcoinMagic, "b")
	if len(short) != 32 {
		t.Fatalf("digest should be 32 bytes, got %d", len(short))
	}
	if string(short) == string(long) {
		t.Error("digests over different messages should differ")
	}

	// A message long enough to need the 0xfd varint prefix (>= 253 bytes)
	// should still hash distinctly from a short message under the same magic.
	big := make([]byte, 300)
	for i := range big {
		big[i] = 'z'
	}
	bigDigest := Digest(BitcoinMagic, string(big))
	if string(bigDigest) == string(short) {
		t.Error("long-message digest collided with short-message digest")
	}
}
