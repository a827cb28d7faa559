package refcount

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRefCount_Basic 测试基本的增减与归零
func TestRefCount_Basic(t *testing.T) {
	rc := New()
	assert.Equal(t, int32(1), rc.Count())

	rc.Ref()
	assert.Equal(t, int32(2), rc.Count())

	assert.False(t, rc.Unref())
	assert.True(t, rc.Unref())
	assert.Equal(t, int32(0), rc.Count())
}

// TestRefCount_UnrefBelowZeroPanics 测试过度释放触发 panic
func TestRefCount_UnrefBelowZeroPanics(t *testing.T) {
	rc := New()
	require.True(t, rc.Unref())

	assert.Panics(t, func() { rc.Unref() })
	assert.Panics(t, func() { rc.Ref() })
}

// TestRefCount_ConcurrentUnref 测试多持有者并发释放时恰好一次归零
func TestRefCount_ConcurrentUnref(t *testing.T) {
	const holders = 64

	rc := New()
	for i := 0; i < holders-1; i++ {
		rc.Ref()
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		zeroCount int
	)

	wg.Add(holders)
	for i := 0; i < holders; i++ {
		go func() {
			defer wg.Done()
			if rc.Unref() {
				mu.Lock()
				zeroCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, zeroCount)
	assert.Equal(t, int32(0), rc.Count())
}
