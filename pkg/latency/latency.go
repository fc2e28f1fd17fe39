// Package latency provides the injectable delay policy applied by the task
// service before each operation. The simulated network delay is a timing
// concern only: it runs before the store is touched, so cancelling during
// the wait never leaves a partial mutation behind.
package latency

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Op names a service operation for delay lookup.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpRun    Op = "run"
)

// Policy decides how long an operation waits before touching the store.
type Policy interface {
	Wait(ctx context.Context, op Op) error
}

type none struct{}

func (none) Wait(context.Context, Op) error { return nil }

// None returns a policy with no delay. Tests use this.
func None() Policy {
	return none{}
}

type bound struct {
	min time.Duration
	max time.Duration
}

var bounds = map[Op]bound{
	OpList:   {100 * time.Millisecond, 100 * time.Millisecond},
	OpGet:    {100 * time.Millisecond, 100 * time.Millisecond},
	OpCreate: {0, time.Second},
	OpUpdate: {150 * time.Millisecond, 150 * time.Millisecond},
	OpDelete: {0, time.Second},
	OpRun:    {time.Second, 3 * time.Second},
}

type jitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter returns the default simulated-latency policy with per-operation
// bounds: fixed 100ms reads, 150ms updates, 0-1s creates/deletes, 1-3s runs.
func NewJitter() Policy {
	return &jitter{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (j *jitter) Wait(ctx context.Context, op Op) error {
	b, ok := bounds[op]
	if !ok {
		return nil
	}

	d := b.min
	if b.max > b.min {
		j.mu.Lock()
		d += time.Duration(j.rng.Int63n(int64(b.max-b.min) + 1))
		j.mu.Unlock()
	}
	if d == 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
