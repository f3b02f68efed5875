// Package eckey implements the core secp256k1 keypair primitive: an
// immutable value holding an optional private scalar and an always-present
// public point, with signing, verification, signature-based public-key
// recovery, magic-prefixed message signing, and symmetric encryption of
// the private scalar at rest.
//
// Everything that makes an address, a wallet, or a transaction is a
// collaborator built on top of the operations here: sign a digest, verify
// a signature, derive a pubkey hash, encrypt/decrypt the private scalar.
package eckey

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/crypto/ripemd160"

	"github.com/GIMICI/eckey/crypter"
	stdecdsa "github.com/GIMICI/eckey/ecdsa"
	"github.com/GIMICI/eckey/group"
	"github.com/GIMICI/eckey/keyasn1"
	"github.com/GIMICI/eckey/scalar"
)

// Keypair is the immutable record at the center of this module: an
// optional private scalar, an always-present (possibly lazily decoded)
// public point, a creation timestamp, and an optional at-rest encrypted
// blob with the crypter that produced it.
//
// Once constructed, a Keypair is safe to share across goroutines: the only
// mutable field is created (see SetCreatedAt); pubHash is cached behind a
// sync.Once, and the public point is decoded behind lazyPoint's own
// sync.Once.
type Keypair struct {
	d       *scalar.Scalar // nil if pub-only, or if encrypted and not decrypted
	pub     *lazyPoint
	created int64 // unix seconds; 0 means unknown

	blob    *crypter.EncryptedBlob
	crypt   crypter.Crypter

	pubHashOnce sync.Once
	pubHash     []byte
}

// validatePrivateScalar enforces invariant 5: a private scalar must be in
// [2, n-1] — zero and one are rejected as sentinel-collision defenses, not
// because they are mathematically invalid.
func validatePrivateScalar(d *scalar.Scalar) error {
	if d.IsZero() || d.Equal(scalar.One()) {
		return newKeyError(KindBadInput, ErrBadPrivateScalar)
	}
	if !d.IsLessThanOrder() {
		return newKeyError(KindBadInput, ErrBadPrivateScalar)
	}
	return nil
}

// derivePublic computes Q = d*G.
func derivePublic(d *scalar.Scalar) *group.Point {
	return group.Infinity().ScalarMult(d, group.Generator())
}

// NewRandom generates a fresh keypair with a uniformly random private
// scalar in [2, n-2], using r if non-nil or the process-wide secure RNG
// otherwise. The resulting public point is compressed.
func NewRandom(r io.Reader) (*Keypair, error) {
	reader := secureRand
	if r != nil {
		reader = r
	}

	nMinusOne := scalar.Zero().Sub(scalar.Zero(), scalar.One())
	for attempts := 0; attempts < 1000; attempts++ {
		buf := make([]byte, 32)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, newKeyError(KindBadInput, err)
		}
		d := scalar.Zero()
		if err := d.SetBytesStrict(buf); err != nil {
			continue
		}
		if err := validatePrivateScalar(d); err != nil || d.Equal(nMinusOne) {
			continue
		}
		Q := derivePublic(d)
		return &Keypair{
			d:       d,
			pub:     newLazyPointFromPoint(Q, true),
			created: time.Now().Unix(),
		}, nil
	}
	return nil, newKeyError(KindInvariantViolation, errors.New("eckey: failed to draw a valid scalar after 1000 attempts"))
}

// FromPrivate builds a keypair from an already-parsed scalar, deriving
// Q = d*G with the requested compression flag. Like FromPrivateBytes, it
// has no default: the caller always passes the flag.
func FromPrivate(d *scalar.Scalar, compressed bool) (*Keypair, error) {
	if err := validatePrivateScalar(d); err != nil {
		return nil, err
	}
	dCopy := scalar.Zero()
	dCopy.SetBytes(d.Bytes())
	Q := derivePublic(dCopy)
	return &Keypair{
		d:   dCopy,
		pub: newLazyPointFromPoint(Q, compressed),
	}, nil
}

// FromPrivateBytes builds a keypair from a 32-byte big-endian scalar.
func FromPrivateBytes(b []byte, compressed bool) (*Keypair, error) {
	if len(b) != 32 {
		return nil, newKeyError(KindBadInput, ErrBadEncoding)
	}
	d := scalar.Zero()
	if err := d.SetBytesStrict(b); err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return FromPrivate(d, compressed)
}

// FromPrivateAndPublic builds a keypair trusting the caller's claim that
// pub = d*G; it does not recompute and check, so it never needs to decode
// pub eagerly. Use this only when Q is already known to be correct (e.g.
// reconstructing a keypair whose invariants were already checked once).
func FromPrivateAndPublic(d *scalar.Scalar, pub *group.Point, compressed bool) (*Keypair, error) {
	if err := validatePrivateScalar(d); err != nil {
		return nil, err
	}
	if pub == nil || pub.IsInfinity() {
		return nil, newKeyError(KindBadInput, ErrBadEncoding)
	}
	dCopy := scalar.Zero()
	dCopy.SetBytes(d.Bytes())
	return &Keypair{
		d:   dCopy,
		pub: newLazyPointFromPoint(pub, compressed),
	}, nil
}

// FromPublicOnly builds a signing-disabled keypair from an already-decoded
// point.
func FromPublicOnly(pub *group.Point, compressed bool) (*Keypair, error) {
	if pub == nil || pub.IsInfinity() {
		return nil, newKeyError(KindBadInput, ErrBadEncoding)
	}
	return &Keypair{pub: newLazyPointFromPoint(pub, compressed)}, nil
}

// FromPublicBytes builds a signing-disabled keypair from a SEC1-encoded
// public key, deferring the actual point decode until first use.
func FromPublicBytes(b []byte) (*Keypair, error) {
	lp, err := newLazyPointFromBytes(b)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return &Keypair{pub: lp}, nil
}

// FromEncrypted builds a keypair whose private scalar is encrypted at
// rest. Signing and PrivBytes fail with KindEncrypted until Decrypt or
// MaybeDecrypt is called with the matching AES key.
func FromEncrypted(blob *crypter.EncryptedBlob, c crypter.Crypter, pubBytes []byte) (*Keypair, error) {
	if blob == nil || c == nil || len(blob.Ciphertext) == 0 {
		return nil, newKeyError(KindBadInput, ErrBadEncoding)
	}
	lp, err := newLazyPointFromBytes(pubBytes)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return &Keypair{pub: lp, blob: blob, crypt: c}, nil
}

// FromASN1 decodes an OpenSSL EC_PRIVATEKEY DER blob (see package keyasn1),
// which already recomputes Q = d*G and rejects a mismatch.
func FromASN1(der []byte) (*Keypair, error) {
	d, pubBytes, err := keyasn1.Decode(der)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	lp, err := newLazyPointFromBytes(pubBytes)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return &Keypair{d: d, pub: lp}, nil
}

// ToASN1 encodes this keypair as an OpenSSL EC_PRIVATEKEY DER blob; it
// fails with KindMissingPrivate if d isn't available in cleartext.
func (k *Keypair) ToASN1() ([]byte, error) {
	if k.d == nil {
		return nil, newKeyError(KindMissingPrivate, ErrMissingPrivate)
	}
	pubBytes, err := k.pub.Bytes()
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	der, err := keyasn1.Encode(k.d, pubBytes)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return der, nil
}

// PubPoint returns the decoded public point, decoding lazily on first call.
func (k *Keypair) PubPoint() (*group.Point, error) {
	p, err := k.pub.Point()
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return p, nil
}

// PubBytes returns the SEC1 encoding of Q at this keypair's compression
// flag.
func (k *Keypair) PubBytes() ([]byte, error) {
	b, err := k.pub.Bytes()
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return b, nil
}

// Compressed reports this keypair's compression flag.
func (k *Keypair) Compressed() bool {
	return k.pub.compressed
}

// PubHash returns RIPEMD-160(SHA-256(PubBytes())), the basis of a Bitcoin
// address, computing and caching it on first call.
func (k *Keypair) PubHash() ([]byte, error) {
	pubBytes, err := k.PubBytes()
	if err != nil {
		return nil, err
	}
	k.pubHashOnce.Do(func() {
		sum := sha256.Sum256(pubBytes)
		h := ripemd160.New()
		h.Write(sum[:])
		k.pubHash = h.Sum(nil)
	})
	return k.pubHash, nil
}

// PrivBytes returns the 32-byte big-endian private scalar; it fails with
// KindMissingPrivate on a pub-only keypair or KindEncrypted on an encrypted
// one that hasn't been decrypted.
func (k *Keypair) PrivBytes() ([]byte, error) {
	if k.d != nil {
		return k.d.Bytes(), nil
	}
	if k.IsEncrypted() {
		return nil, newKeyError(KindEncrypted, ErrEncrypted)
	}
	return nil, newKeyError(KindMissingPrivate, ErrMissingPrivate)
}

// IsCompressed reports whether Q's SEC1 encoding is the 33-byte compressed
// form.
func (k *Keypair) IsCompressed() bool {
	return k.pub.compressed
}

// IsPubOnly reports whether d is unavailable, whether because this keypair
// was built pub-only or because it is encrypted and hasn't been decrypted.
func (k *Keypair) IsPubOnly() bool {
	return k.d == nil
}

// IsEncrypted reports whether a non-empty encrypted blob and its crypter
// are present.
func (k *Keypair) IsEncrypted() bool {
	return k.crypt != nil && k.blob != nil && len(k.blob.Ciphertext) > 0
}

// IsWatching reports whether this keypair is pub-only and not encrypted: a
// "watching" key that can verify but never sign, even transiently.
func (k *Keypair) IsWatching() bool {
	return k.d == nil && !k.IsEncrypted()
}

// CreatedAt returns the creation timestamp in seconds since the Unix
// epoch, or zero if unknown.
func (k *Keypair) CreatedAt() int64 {
	return k.created
}

// SetCreatedAt sets the creation timestamp. This is the one mutable field
// on a Keypair; writes are expected to be rare (a factory or a deserializer
// setting it once) and are race-tolerant since the value is monotonic in
// practice and callers don't read-modify-write it concurrently.
func (k *Keypair) SetCreatedAt(unixSeconds int64) {
	k.created = unixSeconds
}

// Decompress returns a copy of this keypair whose public point uses the
// uncompressed SEC1 encoding. The underlying decoded point, if any, is
// shared rather than recomputed.
func (k *Keypair) Decompress() *Keypair {
	return k.withCompression(false)
}

// Compress returns a copy of this keypair whose public point uses the
// compressed SEC1 encoding.
func (k *Keypair) Compress() *Keypair {
	return k.withCompression(true)
}

func (k *Keypair) withCompression(compressed bool) *Keypair {
	out := &Keypair{
		d:       k.d,
		pub:     k.pub.WithCompressed(compressed),
		created: k.created,
		blob:    k.blob,
		crypt:   k.crypt,
	}
	return out
}

// SignDigest produces an ECDSA signature over a 32-byte digest. If the
// keypair is encrypted, aesKey must be supplied: the cleartext scalar is
// recovered transiently, used once, and discarded. If the keypair is
// pub-only (and not encrypted), this fails with KindMissingPrivate.
func (k *Keypair) SignDigest(digest []byte, aesKey ...[]byte) (*stdecdsa.Signature, error) {
	d, err := k.signingScalar(aesKey...)
	if err != nil {
		return nil, err
	}
	sig, err := stdecdsa.Sign(d, digest)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return sig, nil
}

// signingScalar resolves the scalar to sign with: the cleartext d if
// present, or a transient decryption if encrypted and a key was supplied.
func (k *Keypair) signingScalar(aesKey ...[]byte) (*scalar.Scalar, error) {
	if k.d != nil {
		return k.d, nil
	}
	if !k.IsEncrypted() {
		return nil, newKeyError(KindMissingPrivate, ErrMissingPrivate)
	}
	if len(aesKey) == 0 || len(aesKey[0]) == 0 {
		return nil, newKeyError(KindEncrypted, ErrEncrypted)
	}
	decrypted, err := k.Decrypt(nil, aesKey[0])
	if err != nil {
		return nil, err
	}
	return decrypted.d, nil
}

// VerifyDigest reports whether sig is a valid ECDSA signature over digest
// for this keypair's public point.
func (k *Keypair) VerifyDigest(digest []byte, sig *stdecdsa.Signature) (bool, error) {
	pub, err := k.PubPoint()
	if err != nil {
		return false, err
	}
	return stdecdsa.Verify(pub, digest, sig), nil
}

// VerifyDER is VerifyDigest taking a DER-encoded signature.
func (k *Keypair) VerifyDER(digest, der []byte) (bool, error) {
	sig, err := stdecdsa.SignatureFromDER(der)
	if err != nil {
		return false, newKeyError(KindBadInput, err)
	}
	return k.VerifyDigest(digest, sig)
}

// VerifyDigestOrFail is VerifyDigest but surfaces a distinct
// KindSignatureMismatch error instead of a bare false, for callers that
// want verification failure to be an error rather than a boolean to check.
func (k *Keypair) VerifyDigestOrFail(digest []byte, sig *stdecdsa.Signature) error {
	ok, err := k.VerifyDigest(digest, sig)
	if err != nil {
		return err
	}
	if !ok {
		return newKeyError(KindSignatureMismatch, ErrSignatureMismatch)
	}
	return nil
}

// VerifyDEROrFail is VerifyDER but surfaces KindSignatureMismatch instead
// of a bare false.
func (k *Keypair) VerifyDEROrFail(digest, der []byte) error {
	ok, err := k.VerifyDER(digest, der)
	if err != nil {
		return err
	}
	if !ok {
		return newKeyError(KindSignatureMismatch, ErrSignatureMismatch)
	}
	return nil
}

// Encrypt returns a new keypair holding blob = c.Encrypt(d, aesKey) and no
// cleartext scalar; the original keypair is untouched. The creation
// timestamp is copied.
func (k *Keypair) Encrypt(c crypter.Crypter, aesKey []byte) (*Keypair, error) {
	if k.d == nil {
		return nil, newKeyError(KindMissingPrivate, ErrMissingPrivate)
	}
	blob, err := c.Encrypt(k.d.Bytes(), aesKey)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	return &Keypair{
		pub:     k.pub,
		created: k.created,
		blob:    blob,
		crypt:   c,
	}, nil
}

// Decrypt returns a new keypair holding the cleartext scalar recovered
// from this keypair's encrypted blob. If c is non-nil, it must match the
// crypter recorded at encryption time (by fingerprint) or this fails with
// KindCrypterMismatch; if c is nil, the recorded crypter is reused. A
// wrong aesKey either fails with KindWrongKey (the recovered Q disagrees
// with the stored one) or returns whatever error the crypter itself raises
// (e.g. bad PKCS#7 padding).
func (k *Keypair) Decrypt(c crypter.Crypter, aesKey []byte) (*Keypair, error) {
	if !k.IsEncrypted() {
		return nil, newKeyError(KindMissingPrivate, ErrMissingPrivate)
	}
	if c != nil && !bytes.Equal(c.Fingerprint(), k.crypt.Fingerprint()) {
		return nil, newKeyError(KindCrypterMismatch, ErrCrypterMismatch)
	}
	useCrypter := k.crypt
	if c != nil {
		useCrypter = c
	}

	plain, err := useCrypter.Decrypt(k.blob, aesKey)
	if err != nil {
		return nil, newKeyError(KindBadInput, err)
	}
	d := scalar.Zero()
	if err := d.SetBytesStrict(plain); err != nil {
		return nil, newKeyError(KindBadInput, ErrBadEncoding)
	}

	recomputed := derivePublic(d)
	storedPub, err := k.PubPoint()
	if err != nil {
		return nil, err
	}
	if !recomputed.Equal(storedPub) {
		return nil, newKeyError(KindWrongKey, ErrWrongKey)
	}

	return &Keypair{
		d:       d,
		pub:     k.pub,
		created: k.created,
	}, nil
}

// MaybeDecrypt returns k unchanged if it isn't encrypted or no key was
// supplied, and Decrypt(nil, aesKey) otherwise.
func (k *Keypair) MaybeDecrypt(aesKey []byte) (*Keypair, error) {
	if !k.IsEncrypted() || len(aesKey) == 0 {
		return k, nil
	}
	return k.Decrypt(nil, aesKey)
}

// EncryptionIsReversible checks that decrypting encrypted with (c, aesKey)
// recovers a keypair whose private scalar matches original's, for callers
// that want to confirm a wallet encryption will be reversible before
// committing it to storage.
func EncryptionIsReversible(original, encrypted *Keypair, c crypter.Crypter, aesKey []byte) (bool, error) {
	if original.d == nil {
		return false, newKeyError(KindMissingPrivate, ErrMissingPrivate)
	}
	roundTripped, err := encrypted.Decrypt(c, aesKey)
	if err != nil {
		return false, err
	}
	return bytes.Equal(roundTripped.d.Bytes(), original.d.Bytes()), nil
}

// Equal reports whether two keypairs are equal: same private scalar (or
// both absent), same public point and compression flag, same creation
// time, same crypter identity, and same encrypted blob.
func (k *Keypair) Equal(other *Keypair) bool {
	if k == nil || other == nil {
		return k == other
	}
	if (k.d == nil) != (other.d == nil) {
		return false
	}
	if k.d != nil && !k.d.Equal(other.d) {
		return false
	}
	if k.created != other.created {
		return false
	}
	kPub, err1 := k.PubBytes()
	oPub, err2 := other.PubBytes()
	if err1 != nil || err2 != nil {
		return false
	}
	if !bytes.Equal(kPub, oPub) {
		return false
	}
	if (k.crypt == nil) != (other.crypt == nil) {
		return false
	}
	if k.crypt != nil && !bytes.Equal(k.crypt.Fingerprint(), other.crypt.Fingerprint()) {
		return false
	}
	if (k.blob == nil) != (other.blob == nil) {
		return false
	}
	if k.blob != nil {
		if !bytes.Equal(k.blob.Ciphertext, other.blob.Ciphertext) || k.blob.IV != other.blob.IV {
			return false
		}
	}
	return true
}

// Compare implements a deterministic total order over keypairs by creation
// time, with a lexicographic tiebreak on SEC1 public bytes (the source
// this module is adapted from ties with 0, which isn't a total order; a
// deterministic tiebreak is preferable). Keypairs whose PubBytes fails to
// resolve sort last.
func Compare(a, b *Keypair) int {
	if a.created != b.created {
		if a.created < b.created {
			return -1
		}
		return 1
	}
	aBytes, aErr := a.PubBytes()
	bBytes, bErr := b.PubBytes()
	if aErr != nil || bErr != nil {
		if aErr == nil {
			return -1
		}
		if bErr == nil {
			return 1
		}
		return 0
	}
	return bytes.Compare(aBytes, bBytes)
}

// GetSecretBytes, GetEncryptedData and GetEncryptionType implement the
// "encryptable item" capability set that a wallet layer consumes: the
// model this module uses in place of the inheritance-based abstract
// contract the source's class hierarchy expressed (see DESIGN.md).
func (k *Keypair) GetSecretBytes() ([]byte, error) {
	return k.PrivBytes()
}

func (k *Keypair) GetEncryptedData() (*crypter.EncryptedBlob, bool) {
	if !k.IsEncrypted() {
		return nil, false
	}
	return k.blob, true
}

func (k *Keypair) GetEncryptionType() crypter.Kind {
	if !k.IsEncrypted() {
		return crypter.KindUnencrypted
	}
	return k.crypt.UnderstoodEncryptionType()
}
