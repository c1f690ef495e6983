package kmutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelempires/empire-api/internal/pkg/kmutex"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := kmutex.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("player_1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockPairOppositeOrderDoesNotDeadlock(t *testing.T) {
	km := kmutex.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := km.LockPair("empire_a", "empire_b")
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := km.LockPair("empire_b", "empire_a")
			unlock()
		}()
	}
	wg.Wait()
}

func TestLockAllDeduplicates(t *testing.T) {
	km := kmutex.New()

	unlock := km.LockAll("empire_a", "empire_b", "empire_a")
	unlock()

	unlock = km.Lock("empire_a")
	unlock()
	unlock = km.Lock("empire_b")
	unlock()
}

func TestLockPairSameKey(t *testing.T) {
	km := kmutex.New()

	unlock := km.LockPair("empire_a", "empire_a")
	unlock()

	// still usable afterwards
	unlock = km.Lock("empire_a")
	unlock()
}
