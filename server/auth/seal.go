package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/chacha20"
)

const sealNonceSize = chacha20.NonceSize

// sealToken encrypts the upstream bearer token with a fresh nonce.
// Stored form is base64(nonce || ciphertext).
func sealToken(key [32]byte, token string) (string, error) {
	nonce := make([]byte, sealNonceSize)
	if n, _ := rand.Read(nonce); n != sealNonceSize {
		return "", errors.New("unable to read from crypto/rand")
	}
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(token))
	cipher.XORKeyStream(out, []byte(token))
	return base64.StdEncoding.EncodeToString(append(nonce, out...)), nil
}

// unsealToken reverses sealToken. Returns an empty string on any malformed input.
func unsealToken(key [32]byte, sealed string) string {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < sealNonceSize {
		return ""
	}
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], raw[:sealNonceSize])
	if err != nil {
		return ""
	}
	out := make([]byte, len(raw)-sealNonceSize)
	cipher.XORKeyStream(out, raw[sealNonceSize:])
	return string(out)
}
