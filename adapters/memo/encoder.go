// Package memo implements the encrypted-memo primitive used by the login
// challenge flow: a secp256k1 ECDH shared secret between the service's posting
// key and the recipient's public key, sealing the payload with AES-GCM.
package memo

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"

	"github.com/adcpm/sc2/ports"
)

const nonceSize = 12

// ErrInvalidCode is returned when a code cannot be decoded or fails
// authentication.
var ErrInvalidCode = errors.New("invalid memo code")

// Encoder seals plaintexts from a fixed sender key to per-call recipients.
type Encoder struct {
	priv *ecies.PrivateKey
}

var _ ports.MemoEncoder = (*Encoder)(nil)

// NewEncoder creates an encoder sending from the hex-encoded secp256k1 secret.
func NewEncoder(hexKey string) (*Encoder, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sender key: %w", err)
	}
	return &Encoder{priv: ecies.ImportECDSA(key)}, nil
}

// Encode seals plaintext to the recipient public key. The result is
// base64(nonce || ciphertext); only the recipient's private-key holder (or the
// sender) can open it.
func (e *Encoder) Encode(recipientPub, plaintext string) (string, error) {
	pub, err := parsePublicKey(recipientPub)
	if err != nil {
		return "", err
	}

	aead, nonce, err := e.seal(pub, nil)
	if err != nil {
		return "", err
	}

	out := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decode opens a code produced by the counterparty identified by senderPub.
// ECDH is symmetric, so the same encoder key works on both sides; this is what
// the relaying client and the tests use.
func (e *Encoder) Decode(senderPub, code string) (string, error) {
	pub, err := parsePublicKey(senderPub)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil || len(raw) <= nonceSize {
		return "", ErrInvalidCode
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	aead, _, err := e.seal(pub, nonce)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCode
	}
	return string(plaintext), nil
}

// seal derives the AEAD for the shared secret with pub. A nil nonce means a
// fresh one is generated.
func (e *Encoder) seal(pub *ecdsa.PublicKey, nonce []byte) (cipher.AEAD, []byte, error) {
	shared, err := e.priv.GenerateShared(ecies.ImportECDSAPublic(pub), 16, 16)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive shared secret: %w", err)
	}

	if nonce == nil {
		nonce = make([]byte, nonceSize)
		if _, err := rand.Read(nonce); err != nil {
			return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
	}

	key := sha256.Sum256(append(shared, nonce...))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	return aead, nonce, nil
}

// parsePublicKey accepts compressed (33 byte) or uncompressed (65 byte)
// hex-encoded secp256k1 public keys.
func parsePublicKey(pubHex string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(pubHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	switch len(raw) {
	case 33:
		return crypto.DecompressPubkey(raw)
	case 65:
		return crypto.UnmarshalPubkey(raw)
	default:
		return nil, fmt.Errorf("public key must be 33 or 65 bytes, got %d", len(raw))
	}
}
