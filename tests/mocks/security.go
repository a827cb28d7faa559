package mocks

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              MockSecurityConnector
// ============================================================================

// MockSecurityConnector 模拟 interfaces.SecurityConnector
//
// 引用计数可观测，用于验证构造路径的引用收支平衡。
type MockSecurityConnector struct {
	TargetValue     string
	ServerNameValue string

	// AddHandshakersFunc 可覆盖的握手安装行为
	AddHandshakersFunc func(hm interfaces.HandshakeManager)

	refs     atomic.Int32
	released atomic.Bool

	// AddHandshakersCalls 调用记录
	AddHandshakersCalls atomic.Int32
}

var _ interfaces.SecurityConnector = (*MockSecurityConnector)(nil)

// NewMockSecurityConnector 创建引用计数为 1 的连接器 Mock
func NewMockSecurityConnector(target string) *MockSecurityConnector {
	m := &MockSecurityConnector{
		TargetValue:     target,
		ServerNameValue: target,
	}
	m.refs.Store(1)
	return m
}

// Ref 增加引用
func (m *MockSecurityConnector) Ref() {
	if m.refs.Add(1) <= 1 {
		panic("mocks: ref after release")
	}
}

// Unref 释放引用；归零时标记已释放
func (m *MockSecurityConnector) Unref() {
	n := m.refs.Add(-1)
	if n < 0 {
		panic("mocks: unref below zero")
	}
	if n == 0 {
		m.released.Store(true)
	}
}

// RefCount 返回当前引用计数
func (m *MockSecurityConnector) RefCount() int32 {
	return m.refs.Load()
}

// Released 返回是否已释放（计数到过零）
func (m *MockSecurityConnector) Released() bool {
	return m.released.Load()
}

// Target 返回绑定目标
func (m *MockSecurityConnector) Target() string {
	return m.TargetValue
}

// ServerName 返回服务器名
func (m *MockSecurityConnector) ServerName() string {
	return m.ServerNameValue
}

// AddHandshakers 记录调用并执行注入的行为
func (m *MockSecurityConnector) AddHandshakers(hm interfaces.HandshakeManager) {
	m.AddHandshakersCalls.Add(1)
	if m.AddHandshakersFunc != nil {
		m.AddHandshakersFunc(hm)
	}
}

// ============================================================================
//                              MockCredentials
// ============================================================================

// MockCredentials 模拟 interfaces.Credentials
type MockCredentials struct {
	// FailWith 非 nil 时 NewConnector 直接失败
	FailWith error

	// DerivedArgs 派生参数片段（可为 nil）
	DerivedArgs *types.Args

	mu         sync.Mutex
	connectors []*MockSecurityConnector
}

var _ interfaces.Credentials = (*MockCredentials)(nil)

// NewConnector 派生一个 Mock 连接器并记录
func (m *MockCredentials) NewConnector(target string, _ *types.Args) (interfaces.SecurityConnector, *types.Args, error) {
	if m.FailWith != nil {
		return nil, nil, m.FailWith
	}
	sc := NewMockSecurityConnector(target)
	m.mu.Lock()
	m.connectors = append(m.connectors, sc)
	m.mu.Unlock()
	return sc, m.DerivedArgs, nil
}

// Connectors 返回迄今派生的全部连接器
func (m *MockCredentials) Connectors() []*MockSecurityConnector {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockSecurityConnector, len(m.connectors))
	copy(out, m.connectors)
	return out
}

// LastConnector 返回最近派生的连接器（无则为 nil）
func (m *MockCredentials) LastConnector() *MockSecurityConnector {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.connectors) == 0 {
		return nil
	}
	return m.connectors[len(m.connectors)-1]
}
