package uuidgen

import (
	"github.com/google/uuid"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// Generator issues ids for every document this service creates.
type Generator struct{}

var _ contract.IUUIDGenerator = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{}
}

// NewUUID returns a time-ordered v7 id, so ids sort by creation like the
// timestamps they sit next to. It falls back to v4 if v7 generation fails.
func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
