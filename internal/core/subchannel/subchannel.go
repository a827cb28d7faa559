package subchannel

import (
	"context"
	"net"
	"sync"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("core/subchannel")

// Subchannel 单个连接尝试单元
type Subchannel struct {
	addr      types.Address
	connector interfaces.Connector

	mu    sync.Mutex
	state types.ConnectivityState
	conn  net.Conn

	// cancel 中止进行中的连接尝试
	cancel context.CancelFunc
}

var _ interfaces.Subchannel = (*Subchannel)(nil)

// New 构造子通道
//
// 纯组装，永不失败；不发起任何 IO。
func New(connector interfaces.Connector, args interfaces.SubchannelArgs) *Subchannel {
	return &Subchannel{
		addr:      args.Address,
		connector: connector,
		state:     types.StateIdle,
	}
}

// Address 返回子通道负责的地址
func (s *Subchannel) Address() types.Address {
	return s.addr
}

// State 返回当前连接状态
func (s *Subchannel) State() types.ConnectivityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect 异步发起连接尝试
//
// 幂等：已在连接、已就绪或已关闭时为空操作。
func (s *Subchannel) Connect(ctx context.Context) {
	s.mu.Lock()
	if s.state != types.StateIdle && s.state != types.StateTransientFailure {
		s.mu.Unlock()
		return
	}
	attemptCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = types.StateConnecting
	s.mu.Unlock()

	go s.attempt(attemptCtx)
}

// attempt 执行一次建连与握手
func (s *Subchannel) attempt(ctx context.Context) {
	conn, err := s.connector.Connect(ctx, s.addr)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == types.StateShutdown {
		// 尝试期间被关闭，丢弃结果
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		logger.Debug("连接尝试失败", "addr", s.addr.Addr, "error", err)
		s.state = types.StateTransientFailure
		return
	}
	s.conn = conn
	s.state = types.StateReady
	logger.Debug("子通道就绪", "addr", s.addr.Addr)
}

// Close 关闭子通道并中止未完成的连接尝试（幂等）
func (s *Subchannel) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == types.StateShutdown {
		return nil
	}
	s.state = types.StateShutdown
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
