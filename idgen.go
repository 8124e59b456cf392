package edifact

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ReferenceGenerator produces interchange/message control reference numbers
// (spec.md §5: "control/message reference generation"). The codec never
// calls a global random source directly, so generation stays testable
// without mocking.
type ReferenceGenerator interface {
	Next() string
}

// CounterReferenceGenerator is the deterministic, monotonically increasing
// default required when no generator is injected (spec.md §5, §9).
type CounterReferenceGenerator struct {
	mu      sync.Mutex
	next    int
	digits  int
}

// NewCounterReferenceGenerator starts a counter at 1, formatted as an
// 8-digit zero-padded decimal string, matching the convention used in
// spec.md's worked examples (e.g. "00000001").
func NewCounterReferenceGenerator() *CounterReferenceGenerator {
	return &CounterReferenceGenerator{next: 1, digits: 8}
}

// Next returns the next reference and advances the counter.
func (c *CounterReferenceGenerator) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := fmt.Sprintf("%0*d", c.digits, c.next)
	c.next++
	return v
}

// UUIDReferenceGenerator backs ReferenceGenerator with a real random
// source (google/uuid) for callers that want non-deterministic, globally
// unique references instead of the deterministic counter default.
type UUIDReferenceGenerator struct{}

// Next returns a new random UUID string.
func (UUIDReferenceGenerator) Next() string {
	return uuid.NewString()
}

func defaultReferenceGenerator() ReferenceGenerator {
	return NewCounterReferenceGenerator()
}
