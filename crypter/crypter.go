// Package crypter provides pluggable at-rest encryption of a private
// scalar, following the same shape as a wallet's encrypted-key blob: a
// crypter derives a symmetric key from a passphrase, then encrypts and
// decrypts a fixed-size plaintext under that key.
package crypter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/scrypt"
)

// Kind is the encryption-type tag persisted alongside a blob so a decoder
// can pick the right Crypter without guessing.
type Kind int

const (
	KindUnencrypted Kind = iota
	KindScryptAES256CBC
)

// Common errors
var (
	ErrInvalidKeyLength = errors.New("crypter: aes key must be 32 bytes")
	ErrInvalidBlob       = errors.New("crypter: ciphertext is empty or not block-aligned")
	ErrPadding            = errors.New("crypter: invalid PKCS#7 padding")
)

// EncryptedBlob is the opaque-to-callers result of a Crypter's Encrypt.
type EncryptedBlob struct {
	Ciphertext []byte
	IV         [aes.BlockSize]byte
}

// Crypter is the abstract at-rest encryption provider. The core only ever
// hands it the 32-byte private scalar; it never inspects key material
// beyond what DeriveKey returns.
type Crypter interface {
	Encrypt(plaintext, aesKey []byte) (*EncryptedBlob, error)
	Decrypt(blob *EncryptedBlob, aesKey []byte) ([]byte, error)
	DeriveKey(passphrase []byte) ([]byte, error)
	UnderstoodEncryptionType() Kind
	// Fingerprint identifies this crypter's configuration (kind, KDF
	// parameters, salt) so a keypair can detect at decrypt time whether
	// the crypter supplied differs from the one recorded at encryption.
	Fingerprint() []byte
}

// ScryptAESCBCCrypter is the default Crypter: scrypt key derivation (with
// Bitcoin Core wallet.dat-style parameters) feeding AES-256-CBC with
// PKCS#7 padding.
type ScryptAESCBCCrypter struct {
	N, R, P int
	Salt    []byte
}

// NewScryptAESCBCCrypter returns a crypter with Bitcoin Core's historical
// wallet.dat defaults (N=16384, r=8, p=8). If salt is nil, a fresh random
// 8-byte salt is generated; persist the returned crypter's Salt alongside
// the blob so decryption can reconstruct the same crypter later.
func NewScryptAESCBCCrypter(salt []byte) (*ScryptAESCBCCrypter, error) {
	if salt == nil {
		salt = make([]byte, 8)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
	}
	return &ScryptAESCBCCrypter{N: 16384, R: 8, P: 8, Salt: salt}, nil
}

// DeriveKey is slow by design; callers cache the result.
func (c *ScryptAESCBCCrypter) DeriveKey(passphrase []byte) ([]byte, error) {
	return scrypt.Key(passphrase, c.Salt, c.N, c.R, c.P, 32)
}

func (c *ScryptAESCBCCrypter) UnderstoodEncryptionType() Kind {
	return KindScryptAES256CBC
}

func (c *ScryptAESCBCCrypter) Fingerprint() []byte {
	h := sha256.New()
	h.Write([]byte{byte(c.N >> 24), byte(c.N >> 16), byte(c.N >> 8), byte(c.N)})
	h.Write([]byte{byte(c.R), byte(c.P)})
	h.Write(c.Salt)
	return h.Sum(nil)
}

func (c *ScryptAESCBCCrypter) Encrypt(plaintext, aesKey []byte) (*EncryptedBlob, error) {
	if len(aesKey) != 32 {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	blob := &EncryptedBlob{Ciphertext: make([]byte, len(padded))}
	if _, err := rand.Read(blob.IV[:]); err != nil {
		return nil, err
	}

	mode := cipher.NewCBCEncrypter(block, blob.IV[:])
	mode.CryptBlocks(blob.Ciphertext, padded)
	return blob, nil
}

func (c *ScryptAESCBCCrypter) Decrypt(blob *EncryptedBlob, aesKey []byte) ([]byte, error) {
	if len(aesKey) != 32 {
		return nil, ErrInvalidKeyLength
	}
	if len(blob.Ciphertext) == 0 || len(blob.Ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidBlob
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(blob.Ciphertext))
	mode := cipher.NewCBCDecrypter(block, blob.IV[:])
	mode.CryptBlocks(out, blob.Ciphertext)

	return pkcs7Unpad(out)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) || padLen > aes.BlockSize {
		return nil, ErrPadding
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrPadding
		}
	}
	return data[:len(data)-padLen], nil
}
