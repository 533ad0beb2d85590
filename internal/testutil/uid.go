package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UIDGenerator produces name-based UUIDs from a seed and a counter.
//
// The same seed yields the same sequence, so stored rows and golden output
// are reproducible across runs while UIDs remain valid UUIDs.
type UIDGenerator struct {
	mu   sync.Mutex
	seed string
	n    int
}

// NewUIDGenerator creates a generator. An empty seed uses "calsearch-test".
func NewUIDGenerator(seed string) *UIDGenerator {
	if seed == "" {
		seed = "calsearch-test"
	}
	return &UIDGenerator{seed: seed}
}

// Generate returns the next UID of the sequence.
func (g *UIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", g.seed, g.n))).String()
}
