package mocks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              MockSubchannel
// ============================================================================

// MockSubchannel 模拟 interfaces.Subchannel
type MockSubchannel struct {
	AddressValue types.Address

	state        atomic.Int32
	ConnectCalls atomic.Int32
	CloseCalls   atomic.Int32
}

var _ interfaces.Subchannel = (*MockSubchannel)(nil)

// SetState 设置连接状态（测试驱动）
func (m *MockSubchannel) SetState(s types.ConnectivityState) {
	m.state.Store(int32(s))
}

// Address 返回负责的地址
func (m *MockSubchannel) Address() types.Address {
	return m.AddressValue
}

// Connect 记录调用
func (m *MockSubchannel) Connect(_ context.Context) {
	m.ConnectCalls.Add(1)
	if m.state.Load() == int32(types.StateIdle) {
		m.state.Store(int32(types.StateConnecting))
	}
}

// State 返回当前状态
func (m *MockSubchannel) State() types.ConnectivityState {
	return types.ConnectivityState(m.state.Load())
}

// Close 记录调用并进入 Shutdown
func (m *MockSubchannel) Close() error {
	m.CloseCalls.Add(1)
	m.state.Store(int32(types.StateShutdown))
	return nil
}

// ============================================================================
//                              MockChannelFactory
// ============================================================================

// MockChannelFactory 模拟 interfaces.ClientChannelFactory
//
// 引用计数可观测；CreateChannel 默认不支持（通道构造测试
// 应使用真实工厂配合其余 Mock）。
type MockChannelFactory struct {
	// CreateChannelFunc 可覆盖的通道构造行为
	CreateChannelFunc func(target string, kind types.ChannelKind, args *types.Args) (interfaces.Channel, error)

	refs     atomic.Int32
	released atomic.Bool

	mu          sync.Mutex
	subchannels []*MockSubchannel
}

var _ interfaces.ClientChannelFactory = (*MockChannelFactory)(nil)

// NewMockChannelFactory 创建引用计数为 1 的工厂 Mock
func NewMockChannelFactory() *MockChannelFactory {
	m := &MockChannelFactory{}
	m.refs.Store(1)
	return m
}

// Ref 增加引用
func (m *MockChannelFactory) Ref() {
	if m.refs.Add(1) <= 1 {
		panic("mocks: ref after release")
	}
}

// Unref 释放引用
func (m *MockChannelFactory) Unref() {
	n := m.refs.Add(-1)
	if n < 0 {
		panic("mocks: unref below zero")
	}
	if n == 0 {
		m.released.Store(true)
	}
}

// RefCount 返回当前引用计数
func (m *MockChannelFactory) RefCount() int32 {
	return m.refs.Load()
}

// Released 返回是否已释放
func (m *MockChannelFactory) Released() bool {
	return m.released.Load()
}

// CreateSubchannel 返回一个记录在案的 Mock 子通道
func (m *MockChannelFactory) CreateSubchannel(args interfaces.SubchannelArgs) interfaces.Subchannel {
	sub := &MockSubchannel{AddressValue: args.Address}
	m.mu.Lock()
	m.subchannels = append(m.subchannels, sub)
	m.mu.Unlock()
	return sub
}

// Subchannels 返回迄今创建的全部子通道
func (m *MockChannelFactory) Subchannels() []*MockSubchannel {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockSubchannel, len(m.subchannels))
	copy(out, m.subchannels)
	return out
}

// CreateChannel 执行注入的行为（未注入时返回错误）
func (m *MockChannelFactory) CreateChannel(target string, kind types.ChannelKind, args *types.Args) (interfaces.Channel, error) {
	if m.CreateChannelFunc != nil {
		return m.CreateChannelFunc(target, kind, args)
	}
	return nil, errors.New("mocks: create channel not wired")
}
