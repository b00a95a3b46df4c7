// Package auth gates the admin menu. Catalog code never depends on it.
package auth

import (
	"crypto/subtle"

	"github.com/go-faster/errors"
)

// ErrInvalidCredentials is returned for any failed check. It does not say
// which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is what the console collects before entering admin mode.
// Login is empty for checkers that only use a secret.
type Credentials struct {
	Login  string
	Secret string
}

// CredentialChecker decides whether a set of credentials opens admin mode.
type CredentialChecker interface {
	Check(c Credentials) error
}

// Directory is implemented by checkers that keep a list of named admins.
type Directory interface {
	List() []string
	Add(login, secret string) error
	Remove(login string) error
}

// SharedSecret is a single shared password. It is a placeholder, not a
// security boundary: the secret lives in plain text in memory and config.
type SharedSecret struct {
	secret []byte
}

func NewSharedSecret(secret string) SharedSecret {
	return SharedSecret{secret: []byte(secret)}
}

func (s SharedSecret) Check(c Credentials) error {
	if len(s.secret) == 0 || subtle.ConstantTimeCompare(s.secret, []byte(c.Secret)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
