package mocks

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              MockConnector
// ============================================================================

// MockConnector 模拟 interfaces.Connector
type MockConnector struct {
	// ConnectFunc 可覆盖的建连行为（默认返回错误）
	ConnectFunc func(ctx context.Context, addr types.Address) (net.Conn, error)

	ConnectCalls atomic.Int32
}

var _ interfaces.Connector = (*MockConnector)(nil)

// Name 返回连接器名称
func (m *MockConnector) Name() string {
	return "mock"
}

// Connect 记录调用并执行注入的行为
func (m *MockConnector) Connect(ctx context.Context, addr types.Address) (net.Conn, error) {
	m.ConnectCalls.Add(1)
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, addr)
	}
	return nil, errors.New("mocks: connect not wired")
}

// ============================================================================
//                              MockConnectorFactory
// ============================================================================

// NewCall 一次 New 调用的记录
type NewCall struct {
	ServerName string
	Connector  interfaces.SecurityConnector
}

// MockConnectorFactory 模拟 interfaces.ConnectorFactory
type MockConnectorFactory struct {
	// ConnectFunc 传递给产出连接器的建连行为
	ConnectFunc func(ctx context.Context, addr types.Address) (net.Conn, error)

	mu    sync.Mutex
	calls []NewCall
}

var _ interfaces.ConnectorFactory = (*MockConnectorFactory)(nil)

// New 记录调用并返回 Mock 连接器
func (m *MockConnectorFactory) New(serverName string, sc interfaces.SecurityConnector) interfaces.Connector {
	m.mu.Lock()
	m.calls = append(m.calls, NewCall{ServerName: serverName, Connector: sc})
	m.mu.Unlock()
	return &MockConnector{ConnectFunc: m.ConnectFunc}
}

// Calls 返回迄今全部 New 调用记录
func (m *MockConnectorFactory) Calls() []NewCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NewCall, len(m.calls))
	copy(out, m.calls)
	return out
}
