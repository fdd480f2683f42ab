package services

import (
	"hash/fnv"
	"sync"
)

// Services defined in this package:
// - GradingService: stateless grade resolution and GPA calculation
// - CalculatorService: session-scoped course lists, views and results

// keyedMutex serialises work per key over a fixed set of stripes.
// Distinct keys may share a stripe; a key never maps to two stripes.
type keyedMutex struct {
	stripes []sync.Mutex
}

func newKeyedMutex(n int) *keyedMutex {
	if n <= 0 {
		n = 1
	}
	return &keyedMutex{stripes: make([]sync.Mutex, n)}
}

// Lock acquires the stripe for key and returns its unlock func
func (k *keyedMutex) Lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &k.stripes[h.Sum32()%uint32(len(k.stripes))]
	m.Lock()
	return m.Unlock
}
