package memory

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator produces batch identifiers that sort by creation time.
type ULIDGenerator struct {
	now func() time.Time
}

// NewULIDGenerator creates a ULIDGenerator stamped with the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{now: time.Now}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), ulid.DefaultEntropy()).String()
}
