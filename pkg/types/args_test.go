package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArgs_NilSafe 测试 nil 参数集上的操作安全
func TestArgs_NilSafe(t *testing.T) {
	var a *Args

	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Contains("k"))

	_, ok := a.Get("k")
	assert.False(t, ok)

	// nil 上的拷贝追加产生可用的新实例
	b := a.CopyAndAdd(Arg{Key: "k", Value: 1})
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Contains("k"))
}

// TestArgs_GetLastWins 测试同名项后写覆盖
func TestArgs_GetLastWins(t *testing.T) {
	a := NewArgs(
		Arg{Key: "k", Value: "old"},
		Arg{Key: "other", Value: 7},
		Arg{Key: "k", Value: "new"},
	)

	v, ok := a.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

// TestArgs_CopyIndependence 测试防御性拷贝语义
func TestArgs_CopyIndependence(t *testing.T) {
	orig := NewArgs(Arg{Key: "a", Value: 1})
	copied := orig.CopyAndAdd(Arg{Key: "b", Value: 2})

	// 原实例不受追加影响
	assert.Equal(t, 1, orig.Len())
	assert.Equal(t, 2, copied.Len())
	assert.False(t, orig.Contains("b"))

	// Items 返回的切片与内部存储无别名
	items := copied.Items()
	items[0].Key = "mutated"
	assert.True(t, copied.Contains("a"))
}

// TestArgs_NewArgsCopiesInput 测试构造时拷贝传入切片
func TestArgs_NewArgsCopiesInput(t *testing.T) {
	src := []Arg{{Key: "k", Value: 1}}
	a := NewArgs(src...)

	src[0].Key = "changed"
	assert.True(t, a.Contains("k"))
}
