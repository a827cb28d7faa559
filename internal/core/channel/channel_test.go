package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-rpcchannel/pkg/types"
	"github.com/dep2p/go-rpcchannel/tests/mocks"
)

// newBoundChannel 构造已完成绑定的活通道
func newBoundChannel(t *testing.T) (*Channel, *mocks.MockChannelFactory, *mocks.MockResolver) {
	t.Helper()

	ch := New("mock:///example.com:443", types.ChannelKindRegular, types.NewArgs())
	f := mocks.NewMockChannelFactory()
	res := &mocks.MockResolver{Watcher: ch.Stack()}
	require.NoError(t, ch.Stack().FinishInit(res, f))
	return ch, f, res
}

// TestChannel_Identity 测试通道基本属性
func TestChannel_Identity(t *testing.T) {
	ch := New("mock:///example.com:443", types.ChannelKindRegular, types.NewArgs())
	ch2 := New("mock:///example.com:443", types.ChannelKindRegular, types.NewArgs())

	assert.Equal(t, "mock:///example.com:443", ch.Target())
	assert.NotEmpty(t, ch.ID())
	assert.NotEqual(t, ch.ID(), ch2.ID())
	assert.Equal(t, types.StateIdle, ch.State())
}

// TestStack_FinishInitTakesFactoryRef 测试绑定时取工厂引用
func TestStack_FinishInitTakesFactoryRef(t *testing.T) {
	ch, f, _ := newBoundChannel(t)
	assert.Equal(t, int32(2), f.RefCount())

	// 构造方释放自己的引用后仍有通道栈的一份
	f.Unref()
	assert.Equal(t, int32(1), f.RefCount())
	assert.False(t, f.Released())

	require.NoError(t, ch.Close())
	assert.True(t, f.Released())
}

// TestStack_FinishInitTwice 测试重复绑定被拒绝
func TestStack_FinishInitTwice(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	defer ch.Close()
	defer f.Unref()

	err := ch.Stack().FinishInit(res, f)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

// TestStack_PendingAddressesApplied 测试绑定前的地址更新被缓存并应用
func TestStack_PendingAddressesApplied(t *testing.T) {
	ch := New("mock:///example.com:443", types.ChannelKindRegular, types.NewArgs())
	f := mocks.NewMockChannelFactory()

	// 解析器在构造期间（绑定完成前）同步推送
	ch.Stack().OnAddresses([]types.Address{{Addr: "10.0.0.1:443"}})
	assert.Empty(t, f.Subchannels())

	res := &mocks.MockResolver{Watcher: ch.Stack()}
	require.NoError(t, ch.Stack().FinishInit(res, f))

	subs := f.Subchannels()
	require.Len(t, subs, 1)
	assert.Equal(t, "10.0.0.1:443", subs[0].AddressValue.Addr)
	assert.Equal(t, int32(1), subs[0].ConnectCalls.Load())

	f.Unref()
	ch.Close()
}

// TestStack_AddressUpdateReplaces 测试地址更新的全量替换语义
func TestStack_AddressUpdateReplaces(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	defer func() {
		ch.Close()
	}()
	f.Unref()

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}, {Addr: "10.0.0.2:443"}})
	require.Len(t, f.Subchannels(), 2)

	// 10.0.0.2 保留，10.0.0.1 淘汰，10.0.0.3 新建
	res.Push([]types.Address{{Addr: "10.0.0.2:443"}, {Addr: "10.0.0.3:443"}})
	subs := f.Subchannels()
	require.Len(t, subs, 3)

	assert.Equal(t, int32(1), subs[0].CloseCalls.Load())
	assert.Equal(t, int32(0), subs[1].CloseCalls.Load())
	assert.Equal(t, int32(1), subs[1].ConnectCalls.Load())
	assert.Equal(t, int32(1), subs[2].ConnectCalls.Load())
}

// TestStack_ConcurrentUpdateNotOverwrittenByPending 测试并发更新不被缓存批次覆盖
//
// 绑定前缓存了批次 A，绑定期间另一批次 B 并发到达：
// 无论交错如何，B 都晚于 A 应用，最终受管的是 B 的地址。
func TestStack_ConcurrentUpdateNotOverwrittenByPending(t *testing.T) {
	for i := 0; i < 50; i++ {
		ch := New("mock:///svc", types.ChannelKindRegular, types.NewArgs())
		f := mocks.NewMockChannelFactory()
		ch.Stack().OnAddresses([]types.Address{{Addr: "10.0.0.1:443"}})

		res := &mocks.MockResolver{Watcher: ch.Stack()}
		done := make(chan struct{})
		go func() {
			ch.Stack().OnAddresses([]types.Address{{Addr: "10.0.0.2:443"}})
			close(done)
		}()
		require.NoError(t, ch.Stack().FinishInit(res, f))
		<-done

		for _, sub := range f.Subchannels() {
			switch sub.AddressValue.Addr {
			case "10.0.0.2:443":
				assert.Equal(t, int32(0), sub.CloseCalls.Load())
			case "10.0.0.1:443":
				assert.Equal(t, int32(1), sub.CloseCalls.Load())
			}
		}

		f.Unref()
		ch.Close()
	}
}

// TestStack_DuplicateAddressesInUpdate 测试同批次重复地址只保留一个子通道
func TestStack_DuplicateAddressesInUpdate(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	f.Unref()

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}, {Addr: "10.0.0.1:443"}})
	subs := f.Subchannels()
	require.Len(t, subs, 1)
	assert.Equal(t, int32(1), subs[0].ConnectCalls.Load())

	// 关闭通道后没有子通道脱管
	require.NoError(t, ch.Close())
	for _, sub := range f.Subchannels() {
		assert.Equal(t, int32(1), sub.CloseCalls.Load())
		assert.Equal(t, types.StateShutdown, sub.State())
	}
}

// TestStack_DuplicateAcrossUpdates 测试重复地址跨批次的保留语义
func TestStack_DuplicateAcrossUpdates(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	defer ch.Close()
	f.Unref()

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}})
	res.Push([]types.Address{{Addr: "10.0.0.1:443"}, {Addr: "10.0.0.1:443"}})

	// 原子通道被保留，未新建也未淘汰
	subs := f.Subchannels()
	require.Len(t, subs, 1)
	assert.Equal(t, int32(0), subs[0].CloseCalls.Load())
}

// TestChannel_StateAggregation 测试通道状态聚合
func TestChannel_StateAggregation(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	defer ch.Close()
	f.Unref()

	assert.Equal(t, types.StateIdle, ch.State())

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}, {Addr: "10.0.0.2:443"}})
	assert.Equal(t, types.StateConnecting, ch.State())

	subs := f.Subchannels()
	subs[0].SetState(types.StateTransientFailure)
	assert.Equal(t, types.StateConnecting, ch.State())

	subs[1].SetState(types.StateReady)
	assert.Equal(t, types.StateReady, ch.State())

	subs[1].SetState(types.StateTransientFailure)
	assert.Equal(t, types.StateTransientFailure, ch.State())
}

// TestChannel_Invoke 测试调用入口
func TestChannel_Invoke(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	f.Unref()

	// 无就绪子通道
	err := ch.Invoke(context.Background(), "/svc/Method")
	require.Error(t, err)
	assert.Equal(t, types.CodeUnavailable, types.StatusFromError(err).Code)

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}})
	f.Subchannels()[0].SetState(types.StateReady)
	assert.NoError(t, ch.Invoke(context.Background(), "/svc/Method"))

	// 关闭后调用失败
	require.NoError(t, ch.Close())
	err = ch.Invoke(context.Background(), "/svc/Method")
	require.Error(t, err)
}

// TestChannel_CloseIdempotent 测试关闭幂等且释放资源
func TestChannel_CloseIdempotent(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	f.Unref()

	res.Push([]types.Address{{Addr: "10.0.0.1:443"}})
	sub := f.Subchannels()[0]

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())

	assert.Equal(t, types.StateShutdown, ch.State())
	assert.True(t, res.Closed())
	assert.Equal(t, int32(1), sub.CloseCalls.Load())
	assert.True(t, f.Released())

	// 关闭后的地址更新被忽略
	res.Push([]types.Address{{Addr: "10.0.0.9:443"}})
	assert.Len(t, f.Subchannels(), 1)
}

// TestStack_OnErrorSurfacesState 测试解析失败反映到状态
func TestStack_OnErrorSurfacesState(t *testing.T) {
	ch, f, res := newBoundChannel(t)
	defer ch.Close()
	f.Unref()

	res.PushError(errors.New("nxdomain"))
	assert.Equal(t, types.StateTransientFailure, ch.State())

	// 成功的更新清除错误
	res.Push([]types.Address{{Addr: "10.0.0.1:443"}})
	assert.Equal(t, types.StateConnecting, ch.State())
}

// TestLameChannel 测试残废通道的固定失败语义
func TestLameChannel(t *testing.T) {
	ch := NewLame("dns:///example.com:443", types.CodeInternal, "Security connector exists in channel args.")

	assert.Equal(t, "dns:///example.com:443", ch.Target())
	assert.NotEmpty(t, ch.ID())
	assert.Equal(t, types.StateTransientFailure, ch.State())

	err := ch.Invoke(context.Background(), "/svc/Method")
	require.Error(t, err)
	st := types.StatusFromError(err)
	assert.Equal(t, types.CodeInternal, st.Code)
	assert.Contains(t, st.Message, "Security connector exists in channel args.")

	// 每次调用都以同一状态失败
	err2 := ch.Invoke(context.Background(), "/other/Method")
	assert.Equal(t, err.Error(), err2.Error())

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	assert.Equal(t, types.StateShutdown, ch.State())
}
