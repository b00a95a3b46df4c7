package auth

import (
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCPF    = errors.New("CPF must have 11 digits")
	ErrAdminExists   = errors.New("admin already registered")
	ErrAdminNotFound = errors.New("admin not found")
	ErrLastAdmin     = errors.New("cannot remove the last admin")
	ErrEmptySecret   = errors.New("secret required")
)

type admin struct {
	cpf  string
	hash []byte
}

// Registry is a list of admins identified by CPF. Secrets are kept as
// bcrypt hashes. Not safe for concurrent use.
type Registry struct {
	admins []admin
	cost   int
}

// NewRegistry returns an empty registry hashing with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewRegistry(cost int) *Registry {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Registry{cost: cost}
}

// NormalizeCPF strips everything but ASCII digits and checks the length.
func NormalizeCPF(cpf string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cpf)
	if len(digits) != 11 {
		return "", ErrInvalidCPF
	}
	return digits, nil
}

// List returns the registered CPFs in registration order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a.cpf)
	}
	return out
}

func (r *Registry) Add(cpf, secret string) error {
	cpf, err := NormalizeCPF(cpf)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrEmptySecret
	}
	if r.find(cpf) >= 0 {
		return ErrAdminExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), r.cost)
	if err != nil {
		return errors.Wrap(err, "hash secret")
	}
	r.admins = append(r.admins, admin{cpf: cpf, hash: hash})
	return nil
}

func (r *Registry) Remove(cpf string) error {
	cpf, err := NormalizeCPF(cpf)
	if err != nil {
		return err
	}
	i := r.find(cpf)
	if i < 0 {
		return ErrAdminNotFound
	}
	if len(r.admins) == 1 {
		return ErrLastAdmin
	}
	r.admins = append(r.admins[:i], r.admins[i+1:]...)
	return nil
}

func (r *Registry) Check(c Credentials) error {
	cpf, err := NormalizeCPF(c.Login)
	if err != nil {
		return ErrInvalidCredentials
	}
	i := r.find(cpf)
	if i < 0 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(r.admins[i].hash, []byte(c.Secret)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (r *Registry) find(cpf string) int {
	for i, a := range r.admins {
		if a.cpf == cpf {
			return i
		}
	}
	return -1
}

var (
	_ CredentialChecker = (*Registry)(nil)
	_ Directory         = (*Registry)(nil)
	_ CredentialChecker = SharedSecret{}
)
