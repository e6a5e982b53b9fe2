package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errUnseal = errors.New("session: cannot unseal token")

// Sealer encrypts bearer tokens before they reach the session store.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret string) (*Sealer, error) {
	s := &Sealer{}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("estateadmin session token"))
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sealer) Seal(token string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key), nil
}

func (s *Sealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize {
		return "", errUnseal
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errUnseal
	}
	return string(out), nil
}
