package mocks

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              MockResolver
// ============================================================================

// MockResolver 模拟 interfaces.Resolver
type MockResolver struct {
	// Watcher 构造时绑定的观察者，可用 Push/PushError 手动驱动
	Watcher interfaces.Watcher

	ResolveNowCalls atomic.Int32
	closed          atomic.Bool
}

var _ interfaces.Resolver = (*MockResolver)(nil)

// Push 向观察者推送一批地址
func (m *MockResolver) Push(addrs []types.Address) {
	m.Watcher.OnAddresses(addrs)
}

// PushError 向观察者推送一次解析失败
func (m *MockResolver) PushError(err error) {
	m.Watcher.OnError(err)
}

// ResolveNow 记录调用
func (m *MockResolver) ResolveNow() {
	m.ResolveNowCalls.Add(1)
}

// Close 标记关闭
func (m *MockResolver) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed 返回是否已关闭
func (m *MockResolver) Closed() bool {
	return m.closed.Load()
}

// ============================================================================
//                              MockResolverBuilder
// ============================================================================

// MockResolverBuilder 模拟 interfaces.ResolverBuilder
type MockResolverBuilder struct {
	// SchemeValue 负责的 scheme（默认 "mock"）
	SchemeValue string

	// FailWith 非 nil 时 Build 直接失败
	FailWith error

	// InitialAddresses 非空时构造即同步推送
	InitialAddresses []types.Address

	BuildCalls atomic.Int32

	mu        sync.Mutex
	resolvers []*MockResolver
}

var _ interfaces.ResolverBuilder = (*MockResolverBuilder)(nil)

// Scheme 返回负责的 scheme
func (m *MockResolverBuilder) Scheme() string {
	if m.SchemeValue == "" {
		return "mock"
	}
	return m.SchemeValue
}

// Build 构造一个 Mock 解析器并记录
func (m *MockResolverBuilder) Build(_ types.Target, _ *types.Args, w interfaces.Watcher) (interfaces.Resolver, error) {
	m.BuildCalls.Add(1)
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	r := &MockResolver{Watcher: w}
	m.mu.Lock()
	m.resolvers = append(m.resolvers, r)
	m.mu.Unlock()
	if len(m.InitialAddresses) > 0 {
		w.OnAddresses(m.InitialAddresses)
	}
	return r, nil
}

// LastResolver 返回最近构造的解析器（无则为 nil）
func (m *MockResolverBuilder) LastResolver() *MockResolver {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resolvers) == 0 {
		return nil
	}
	return m.resolvers[len(m.resolvers)-1]
}
