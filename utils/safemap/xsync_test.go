package safemap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapConcurrentSet(t *testing.T) {
	m := New[string, bool]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set(fmt.Sprintf("http://example.com/%d", i), i%2 == 0)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, m.Len())

	snapshot := m.Snapshot()
	assert.True(t, snapshot["http://example.com/2"])
	assert.False(t, snapshot["http://example.com/3"])
}

func TestMapSnapshot(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	snapshot := m.Snapshot()
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, snapshot)

	snapshot["c"] = 3
	assert.Equal(t, 2, m.Len())
}
