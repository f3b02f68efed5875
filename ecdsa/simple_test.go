package ecdsa

import (
	"crypto/sha256"
	"testing"

	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/scalar"
)

func TestECDSABasicFunctionality(t *testing.T) {
	// Use simple test values that should work
	privkey := scalar.Zero()
	privkey.SetBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	// Generate public key
	g := group.Generator()
	pubkey := group.Infinity().ScalarMult(privkey, g)

	// Simple message
	msgHash := sha256.Sum256([]byte("test"))

	// Test signature creation
	t.Log("Testing ECDSA signature creation...")
	sig, err := Sign(privkey, msgHash[:])
	if err != nil {
		t.Fatalf("Signature creation failed: %v", err)
	}

	// Test verification
	t.Log("Testing ECDSA signature verification...")
	valid := Verify(pubkey, msgHash[:], sig)
	if !valid {
		t.Error("Signature verification failed")
	}
}

func TestECDSASimpleSignatureEncoding(t *testing.T) {
	// Test signature encoding/decoding with simple values
	r := scalar.Zero()
	r.SetBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	s := scalar.Zero()
	s.SetBytes([]byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	sig := &Signature{r: r, s: s}

	// Test encoding
	sigBytes := sig.Bytes()
	if len(sigBytes) != 64 {
		t.Errorf("Signature should be 64 bytes, got %d", len(sigBytes))
	}

	// Test decoding
	sig2, err := SignatureFromBytes(sigBytes)
	if err != nil {
		t.Fatalf("Failed to decode signature: %v", err)
	}

	// Test that components match
	if !sig.R().Equal(sig2.R()) || !sig.S().Equal(sig2.S()) {
		t.Error("Signature encoding/decoding failed")
	}
}

func TestECDSASimpleInvalidInputs(t *testing.T) {
	privkey := scalar.Zero()
	privkey.SetBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	// Test invalid message length
	_, err := Sign(privkey, []byte("short"))
	if err == nil {
		t.Error("Should fail for invalid message length")
	}

	// Test zero private key
	zeroPriv := scalar.Zero()
	_, err = Sign(zeroPriv, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32})
	if err == nil {
		t.Error("Should fail for zero private key")
	}

	// Test invalid signature
	invalidSig := &Signature{
		r: scalar.Zero(),
		s: scalar.Zero(),
	}

	pubkey := group.Infinity()
	pubkey.SetBytes([]byte{0x02, 0x79, 0xBE, 0x66, 0x7E, 0xF9, 0xDC, 0xBB, 0xAC, 0x55, 0xA0, 0x62, 0x95, 0xCE, 0x87, 0x0B, 0x07, 0x02, 0x9B, 0xFC, 0xDB, 0x2D, 0xCE, 0x28, 0xD9, 0x59, 0xF2, 0x81, 0x5B, 0x16, 0xF8, 0x17, 0x98})

	valid := Verify(pubkey, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}, invalidSig)
	if valid {
		t.Error("Should fail for invalid signature")
	}
}
