package rr

import (
	"sync"
	"sync/atomic"
)

// RoundRobin rotates over a hot-swappable string list
// (upstream api mirrors, webhook proxies).
type RoundRobin interface {
	Next() (string, bool)
	Count() int
}

type rr struct {
	data  *atomic.Pointer[[]string]
	mu    *sync.Mutex
	index *atomic.Uint32
}

func New(data *atomic.Pointer[[]string]) *rr {
	return &rr{
		data:  data,
		mu:    &sync.Mutex{},
		index: new(atomic.Uint32),
	}
}

func (rr *rr) Next() (string, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	targets := *rr.data.Load()

	if len(targets) == 0 {
		return "", false
	}

	n := rr.index.Add(1)
	target := targets[(int(n)-1)%len(targets)]

	return target, true
}

func (rr *rr) Count() int {
	targets := *rr.data.Load()
	return len(targets)
}
