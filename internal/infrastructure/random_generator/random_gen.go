package randomgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// RandomGenerator issues opaque url-safe tokens, used as OAuth state values.
type RandomGenerator struct{}

var _ contract.IRandomGenerator = (*RandomGenerator)(nil)

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// GenerateRandomToken returns n random bytes, base64url encoded without padding.
func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
