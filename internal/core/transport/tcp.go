package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("core/transport")

// ============================================================================
//                              配置
// ============================================================================

// Config 传输模块配置
type Config struct {
	// DialTimeout 单次建连超时
	DialTimeout time.Duration

	// KeepAlive TCP keep-alive 间隔（0 使用系统默认）
	KeepAlive time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout: 20 * time.Second,
		KeepAlive:   30 * time.Second,
	}
}

// ============================================================================
//                              TCPFactory
// ============================================================================

// TCPFactory 基于 TCP 的传输连接器工厂
type TCPFactory struct {
	config Config
}

var _ interfaces.ConnectorFactory = (*TCPFactory)(nil)

// NewTCPFactory 创建 TCP 连接器工厂
func NewTCPFactory(config Config) *TCPFactory {
	if config.DialTimeout <= 0 {
		config.DialTimeout = DefaultConfig().DialTimeout
	}
	return &TCPFactory{config: config}
}

// New 为指定服务器名构造连接器
//
// 把安全连接器的握手步骤安装到握手链上。纯组装，不做 IO。
func (f *TCPFactory) New(serverName string, sc interfaces.SecurityConnector) interfaces.Connector {
	chain := &handshakeChain{}
	if sc != nil {
		sc.AddHandshakers(chain)
	}
	return &tcpConnector{
		serverName: serverName,
		config:     f.config,
		chain:      chain,
	}
}

// ============================================================================
//                              tcpConnector
// ============================================================================

// tcpConnector 单个 TCP 连接器
type tcpConnector struct {
	serverName string
	config     Config
	chain      *handshakeChain
}

var _ interfaces.Connector = (*tcpConnector)(nil)

// Name 返回连接器名称
func (c *tcpConnector) Name() string {
	return "tcp"
}

// Connect 对指定地址发起一次连接尝试
func (c *tcpConnector) Connect(ctx context.Context, addr types.Address) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   c.config.DialTimeout,
		KeepAlive: c.config.KeepAlive,
	}

	raw, err := dialer.DialContext(ctx, "tcp", addr.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDialFailed, addr.Addr, err)
	}

	conn, err := c.chain.run(ctx, raw)
	if err != nil {
		logger.Warn("握手失败", "addr", addr.Addr, "serverName", c.serverName, "error", err)
		return nil, err
	}

	logger.Debug("连接已建立", "addr", addr.Addr, "handshakers", len(c.chain.steps))
	return conn, nil
}
