package passwordservice

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password verification failed")

type Hasher struct {
	cost int
}

// check if IHasher was implemented at compile time
var _ contract.IHasher = (*Hasher)(nil)

// NewHasher uses bcrypt.DefaultCost when cost is out of bcrypt's range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *Hasher) ComparePasswordHash(password, hashedPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to check password hash: %w", err)
	}
	return nil
}

// HashString digests refresh tokens for storage. Tokens are long and random,
// so SHA-256 is enough and bcrypt's 72 byte limit does not apply.
func (h *Hasher) HashString(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}

func (h *Hasher) CheckHash(s, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(h.HashString(s)), []byte(hash)) == 1
}
