package channelargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// fakeConnector 仅满足接口的空连接器
type fakeConnector struct {
	target string
}

var _ interfaces.SecurityConnector = (*fakeConnector)(nil)

func (f *fakeConnector) Ref()                                        {}
func (f *fakeConnector) Unref()                                      {}
func (f *fakeConnector) Target() string                              { return f.target }
func (f *fakeConnector) ServerName() string                          { return f.target }
func (f *fakeConnector) AddHandshakers(_ interfaces.HandshakeManager) {}

// TestMerge_Order 测试合并顺序：派生参数在前，调用方参数覆盖
func TestMerge_Order(t *testing.T) {
	sc := &fakeConnector{target: "example.com:443"}

	base := types.NewArgs(types.Arg{Key: "k", Value: "caller"})
	derived := types.NewArgs(
		types.Arg{Key: "k", Value: "derived"},
		types.Arg{Key: KeySNIHost, Value: "example.com"},
	)

	merged, err := Merge(base, derived, sc)
	require.NoError(t, err)

	// 调用方参数覆盖派生参数
	v, ok := merged.Get("k")
	require.True(t, ok)
	assert.Equal(t, "caller", v)

	// 派生参数保留
	v, ok = merged.Get(KeySNIHost)
	require.True(t, ok)
	assert.Equal(t, "example.com", v)

	// 回指项在末尾且唯一
	assert.Same(t, sc, SecurityConnectorFromArgs(merged))
	items := merged.Items()
	assert.Equal(t, KeySecurityConnector, items[len(items)-1].Key)
}

// TestMerge_ConflictingSecurityState 测试调用方参数中已有回指项
func TestMerge_ConflictingSecurityState(t *testing.T) {
	sc := &fakeConnector{target: "example.com:443"}

	base := types.NewArgs(types.Arg{Key: KeySecurityConnector, Value: sc})
	_, err := Merge(base, nil, sc)
	assert.ErrorIs(t, err, ErrConflictingSecurityState)
}

// TestMerge_DerivedCarriesConnector 测试派生参数携带回指项时的防御检查
func TestMerge_DerivedCarriesConnector(t *testing.T) {
	sc := &fakeConnector{target: "example.com:443"}

	derived := types.NewArgs(types.Arg{Key: KeySecurityConnector, Value: sc})
	_, err := Merge(nil, derived, sc)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

// TestMerge_NilConnector 测试缺失连接器
func TestMerge_NilConnector(t *testing.T) {
	_, err := Merge(types.NewArgs(), nil, nil)
	assert.ErrorIs(t, err, ErrNilConnector)
}

// TestMerge_NilBaseAndDerived 测试空输入下的合并
func TestMerge_NilBaseAndDerived(t *testing.T) {
	sc := &fakeConnector{target: "example.com:443"}

	merged, err := Merge(nil, nil, sc)
	require.NoError(t, err)
	assert.Equal(t, 1, merged.Len())
	assert.Same(t, sc, SecurityConnectorFromArgs(merged))
}

// TestMerge_DefensiveCopy 测试合并结果与原参数集无别名
func TestMerge_DefensiveCopy(t *testing.T) {
	sc := &fakeConnector{target: "example.com:443"}

	base := types.NewArgs(types.Arg{Key: "a", Value: 1})
	merged, err := Merge(base, nil, sc)
	require.NoError(t, err)

	// 基于 merged 的追加不影响 base
	grown := merged.CopyAndAdd(types.Arg{Key: "b", Value: 2})
	assert.False(t, base.Contains("b"))
	assert.False(t, merged.Contains("b"))
	assert.True(t, grown.Contains("b"))
}

// TestSecurityConnectorFromArgs_WrongType 测试回指项类型不符时返回 nil
func TestSecurityConnectorFromArgs_WrongType(t *testing.T) {
	args := types.NewArgs(types.Arg{Key: KeySecurityConnector, Value: "not a connector"})
	assert.Nil(t, SecurityConnectorFromArgs(args))
}
