package keymutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/reroll-stats/internal/pkg/keymutex"
)

func TestSerializesPerKey(t *testing.T) {
	km := keymutex.New()
	counters := map[string]*int{"a": new(int), "b": new(int)}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for key, n := range counters {
			wg.Add(1)
			go func(key string, n *int) {
				defer wg.Done()
				km.Lock(key)
				defer km.Unlock(key)
				*n++
			}(key, n)
		}
	}
	wg.Wait()

	assert.Equal(t, 100, *counters["a"])
	assert.Equal(t, 100, *counters["b"])
}

func TestUnlockUnknownKeyPanics(t *testing.T) {
	km := keymutex.New()

	assert.Panics(t, func() {
		km.Unlock("never-locked")
	})
}
