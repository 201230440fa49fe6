// Package id provides document identifier generators, decoupled from the
// remote store so id assignment is testable on its own.
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure generators implement the interface.
var (
	_ driven.IDGenerator = (*UUIDGenerator)(nil)
	_ driven.IDGenerator = (*SequenceGenerator)(nil)
)

// UUIDGenerator assigns random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID-based generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUID string.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator assigns monotonic identifiers with a fixed prefix.
// Deterministic alternative for tests.
type SequenceGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequenceGenerator creates a monotonic generator.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
