package eckey

import "errors"

// Kind classifies the failure modes a Keypair operation can report, so
// callers can branch on "the user mistyped their passphrase" versus "this
// blob is corrupt" without parsing error strings.
type Kind int

const (
	// KindBadInput marks a malformed byte encoding: SEC1 prefix, DER,
	// ASN.1, base64, length mismatch, or an out-of-range header byte.
	KindBadInput Kind = iota
	// KindMissingPrivate marks an operation that needs d on a pub-only
	// keypair.
	KindMissingPrivate
	// KindEncrypted marks an operation that needs d on an encrypted
	// keypair when no AES key was supplied.
	KindEncrypted
	// KindCrypterMismatch marks a decrypt call whose crypter differs from
	// the one recorded at encryption time.
	KindCrypterMismatch
	// KindWrongKey marks a decryption that succeeded mechanically but
	// produced a scalar whose derived point disagrees with the stored Q.
	KindWrongKey
	// KindRecoveryImpossible marks a signature recovery that returned no
	// candidate point.
	KindRecoveryImpossible
	// KindSignatureMismatch marks a syntactically valid signature that
	// does not verify against the given message/key.
	KindSignatureMismatch
	// KindInvariantViolation marks a condition the core's own invariants
	// rule out; seeing this means there is a bug, not a bad input.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad-input"
	case KindMissingPrivate:
		return "missing-private"
	case KindEncrypted:
		return "encrypted"
	case KindCrypterMismatch:
		return "crypter-mismatch"
	case KindWrongKey:
		return "wrong-key"
	case KindRecoveryImpossible:
		return "recovery-impossible"
	case KindSignatureMismatch:
		return "signature-mismatch"
	case KindInvariantViolation:
		return "invariant-violation"
	default:
		return "unknown"
	}
}

// KeyError is the error type every exported eckey operation returns for a
// classified failure. Callers use errors.As to pull one out and switch on
// Kind, the way ModChain's error2.go models a typed error with a Code.
type KeyError struct {
	Kind Kind
	Err  error
}

func (e *KeyError) Error() string {
	if e.Err == nil {
		return "eckey: " + e.Kind.String()
	}
	return "eckey: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

func newKeyError(kind Kind, err error) *KeyError {
	return &KeyError{Kind: kind, Err: err}
}

// Sentinel errors wrapped inside a KeyError's Err field, for callers that
// prefer errors.Is over inspecting Kind.
var (
	ErrMissingPrivate     = errors.New("eckey: keypair has no private scalar")
	ErrEncrypted          = errors.New("eckey: private scalar is encrypted and no aes key was supplied")
	ErrCrypterMismatch    = errors.New("eckey: crypter does not match the one recorded at encryption time")
	ErrWrongKey           = errors.New("eckey: decrypted scalar does not derive the stored public key")
	ErrRecoveryImpossible = errors.New("eckey: signature recovery produced no candidate public key")
	ErrSignatureMismatch  = errors.New("eckey: signature does not verify for this message and key")
	ErrInvariantViolation = errors.New("eckey: internal invariant violated")
	ErrBadPrivateScalar   = errors.New("eckey: private scalar must be in [2, n-1]; 0 and 1 are rejected")
	ErrBadEncoding        = errors.New("eckey: malformed byte encoding")
)
