package factory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-rpcchannel/internal/core/resolver"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
	"github.com/dep2p/go-rpcchannel/tests/mocks"
)

// newTestMaker 构造带 Mock 依赖的 Maker
func newTestMaker(builders ...*mocks.MockResolverBuilder) (*Maker, *mocks.MockConnectorFactory) {
	reg := resolver.NewRegistry()
	for _, b := range builders {
		reg.Register(b)
	}
	cf := &mocks.MockConnectorFactory{}
	return NewMaker(reg, cf, nil), cf
}

// TestMaker_NewTakesConnectorRef 测试产出能力时对连接器取引用
func TestMaker_NewTakesConnectorRef(t *testing.T) {
	m, _ := newTestMaker()
	sc := mocks.NewMockSecurityConnector("mock:///t")

	f, err := m.New(sc)
	require.NoError(t, err)
	assert.Equal(t, int32(2), sc.RefCount())

	// 能力释放归还连接器引用
	f.Unref()
	assert.Equal(t, int32(1), sc.RefCount())
	assert.False(t, sc.Released())
	sc.Unref()
	assert.True(t, sc.Released())
}

// TestMaker_NewNilConnector 测试缺失连接器
func TestMaker_NewNilConnector(t *testing.T) {
	m, _ := newTestMaker()
	_, err := m.New(nil)
	assert.ErrorIs(t, err, ErrNilSecurityConnector)
}

// TestFactory_ConcurrentRefUnref 测试多持有者并发增减引用
func TestFactory_ConcurrentRefUnref(t *testing.T) {
	m, _ := newTestMaker()
	sc := mocks.NewMockSecurityConnector("mock:///t")
	defer sc.Unref()

	f, err := m.New(sc)
	require.NoError(t, err)

	const holders = 32
	var wg sync.WaitGroup
	wg.Add(holders)
	for i := 0; i < holders; i++ {
		f.Ref()
		go func() {
			defer wg.Done()
			f.Unref()
		}()
	}
	wg.Wait()

	impl := f.(*clientChannelFactory)
	assert.Equal(t, int32(1), impl.RefCount())
	f.Unref()
	assert.Equal(t, int32(1), sc.RefCount())
}

// TestFactory_CreateSubchannel 测试子通道组装
func TestFactory_CreateSubchannel(t *testing.T) {
	m, cf := newTestMaker()
	sc := mocks.NewMockSecurityConnector("mock:///t")
	sc.ServerNameValue = "fallback.example"
	defer sc.Unref()

	f, err := m.New(sc)
	require.NoError(t, err)
	defer f.Unref()

	sub := f.CreateSubchannel(interfaces.SubchannelArgs{
		Address:    types.Address{Addr: "10.0.0.1:443"},
		ServerName: "explicit.example",
	})
	require.NotNil(t, sub)
	assert.Equal(t, "10.0.0.1:443", sub.Address().Addr)
	assert.Equal(t, types.StateIdle, sub.State())

	// 未指定服务器名时回落到连接器的
	f.CreateSubchannel(interfaces.SubchannelArgs{
		Address: types.Address{Addr: "10.0.0.2:443"},
	})

	calls := cf.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "explicit.example", calls[0].ServerName)
	assert.Same(t, sc, calls[0].Connector)
	assert.Equal(t, "fallback.example", calls[1].ServerName)
}

// TestFactory_CreateChannelSuccess 测试通道构造成功路径
func TestFactory_CreateChannelSuccess(t *testing.T) {
	rb := &mocks.MockResolverBuilder{
		InitialAddresses: []types.Address{{Addr: "10.0.0.1:443"}},
	}
	m, _ := newTestMaker(rb)
	sc := mocks.NewMockSecurityConnector("mock:///t")
	defer sc.Unref()

	f, err := m.New(sc)
	require.NoError(t, err)

	ch, err := f.CreateChannel("mock:///example.com:443", types.ChannelKindRegular, types.NewArgs())
	require.NoError(t, err)
	require.NotNil(t, ch)

	// 构造方释放自己的能力引用后，通道栈仍持有一个
	f.Unref()
	impl := f.(*clientChannelFactory)
	assert.Equal(t, int32(1), impl.RefCount())
	assert.Equal(t, int32(2), sc.RefCount())

	// 通道关闭释放解析器与能力引用
	require.NoError(t, ch.Close())
	assert.True(t, rb.LastResolver().Closed())
	assert.Equal(t, int32(1), sc.RefCount())
}

// TestFactory_CreateChannelResolverFailure 测试解析器创建失败路径
func TestFactory_CreateChannelResolverFailure(t *testing.T) {
	rb := &mocks.MockResolverBuilder{FailWith: errors.New("bad target")}
	m, _ := newTestMaker(rb)
	sc := mocks.NewMockSecurityConnector("mock:///t")

	f, err := m.New(sc)
	require.NoError(t, err)

	ch, err := f.CreateChannel("mock:///bad", types.ChannelKindRegular, types.NewArgs())
	assert.Nil(t, ch)
	assert.ErrorIs(t, err, ErrResolverCreation)
	assert.Equal(t, int32(1), rb.BuildCalls.Load())

	// 失败后构造方的对称清理使全部引用归零
	f.Unref()
	sc.Unref()
	assert.True(t, sc.Released())
}

// TestFactory_CreateChannelUnknownScheme 测试未注册 scheme 的失败
func TestFactory_CreateChannelUnknownScheme(t *testing.T) {
	m, _ := newTestMaker()
	sc := mocks.NewMockSecurityConnector("mock:///t")
	defer sc.Unref()

	f, err := m.New(sc)
	require.NoError(t, err)
	defer f.Unref()

	ch, err := f.CreateChannel("nowhere:///x", types.ChannelKindRegular, nil)
	assert.Nil(t, ch)
	assert.ErrorIs(t, err, ErrResolverCreation)
}

// TestFactory_UseAfterRelease 测试释放后的工厂能力禁止使用
func TestFactory_UseAfterRelease(t *testing.T) {
	m, _ := newTestMaker()
	sc := mocks.NewMockSecurityConnector("mock:///t")

	f, err := m.New(sc)
	require.NoError(t, err)
	f.Unref()

	assert.PanicsWithValue(t, ErrFactoryReleased, func() {
		f.CreateSubchannel(interfaces.SubchannelArgs{Address: types.Address{Addr: "10.0.0.1:443"}})
	})
	assert.PanicsWithValue(t, ErrFactoryReleased, func() {
		f.CreateChannel("mock:///t", types.ChannelKindRegular, nil)
	})
}
