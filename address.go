package eckey

import "crypto/sha256"

// base58Alphabet is the Bitcoin Base58 alphabet: all alphanumeric
// characters except 0, O, I and l, chosen to avoid visual ambiguity.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// base58CheckEncode encodes data with a 4-byte double-SHA256 checksum
// appended, the wire format Bitcoin addresses and WIF keys share.
func base58CheckEncode(data []byte) string {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	full := make([]byte, len(data)+4)
	copy(full, data)
	copy(full[len(data):], second[:4])

	return base58Encode(full)
}

func base58Encode(data []byte) string {
	zeros := 0
	for _, b := range data {
		if b != 0 {
			break
		}
		zeros++
	}

	size := len(data)*138/100 + 1
	buf := make([]byte, size)
	for _, b := range data {
		carry := int(b)
		for i := size - 1; i >= 0; i-- {
			carry += 256 * int(buf[i])
			buf[i] = byte(carry % 58)
			carry /= 58
		}
	}

	i := 0
	for i < size && buf[i] == 0 {
		i++
	}

	result := make([]byte, zeros+size-i)
	for j := 0; j < zeros; j++ {
		result[j] = '1'
	}
	for j := zeros; i < size; i, j = i+1, j+1 {
		result[j] = base58Alphabet[buf[i]]
	}
	return string(result)
}

// ToAddress wraps PubHash with a network version byte and Base58Check-
// encodes it, producing a P2PKH-style address
// (Base58Check(version || HASH160(pubkey))). Callers on other networks
// pass that network's version byte; e.g. 0x00 for Bitcoin mainnet.
func (k *Keypair) ToAddress(networkVersion byte) (string, error) {
	hash, err := k.PubHash()
	if err != nil {
		return "", err
	}
	payload := make([]byte, 1+len(hash))
	payload[0] = networkVersion
	copy(payload[1:], hash)
	return base58CheckEncode(payload), nil
}
