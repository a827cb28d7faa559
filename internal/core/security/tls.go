package security

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/dep2p/go-rpcchannel/internal/core/channelargs"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              TLSCredentials
// ============================================================================

// TLSCredentials 基于标准库 crypto/tls 的通道凭证
//
// 不可变；同一份凭证可用于多次通道构造，每次构造产生
// 相互独立的安全连接器。
type TLSCredentials struct {
	config *tls.Config

	// serverNameOverride 非空时覆盖由目标派生的服务器名
	serverNameOverride string
}

var _ interfaces.Credentials = (*TLSCredentials)(nil)

// NewTLSCredentials 创建 TLS 凭证
//
// config 可为 nil（使用系统默认根证书）；传入的 config 会被
// Clone，调用方之后的修改不影响凭证。
func NewTLSCredentials(config *tls.Config) *TLSCredentials {
	return NewTLSCredentialsWithServerName(config, "")
}

// NewTLSCredentialsWithServerName 创建带服务器名覆盖的 TLS 凭证
func NewTLSCredentialsWithServerName(config *tls.Config, serverNameOverride string) *TLSCredentials {
	if config == nil {
		config = &tls.Config{}
	} else {
		config = config.Clone()
	}
	if config.MinVersion == 0 {
		config.MinVersion = tls.VersionTLS12
	}
	return &TLSCredentials{
		config:             config,
		serverNameOverride: serverNameOverride,
	}
}

// NewConnector 由凭证与目标派生安全连接器
//
// 策略校验：凭证配置自洽、目标 scheme 支持安全传输、
// 目标可解析出主机名；通过后派生 SNI 服务器名并作为派生
// 参数片段返回，由调用方负责合并。不做任何网络 IO。
func (c *TLSCredentials) NewConnector(target string, _ *types.Args) (interfaces.SecurityConnector, *types.Args, error) {
	if c.config.MaxVersion != 0 && c.config.MaxVersion < c.config.MinVersion {
		return nil, nil, fmt.Errorf("%w: max TLS version below min", ErrInvalidCredentials)
	}

	tgt, err := types.ParseTarget(target)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	// 套接字路径类 scheme 没有可校验的主机名，
	// 除非显式覆盖服务器名，否则无法承载 TLS
	if !schemeSecurable(tgt.Scheme) && c.serverNameOverride == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrSchemeNotSecurable, tgt.Scheme)
	}

	serverName := c.serverNameOverride
	if serverName == "" {
		serverName = hostFromEndpoint(tgt.Endpoint)
	}
	if serverName == "" {
		return nil, nil, fmt.Errorf("%w: no host in target %q", ErrInvalidTarget, target)
	}

	sc := &tlsConnector{
		config: c.config.Clone(),
	}
	sc.config.ServerName = serverName
	sc.baseConnector = newBaseConnector(target, serverName, func() {
		// 归零时丢弃握手配置，杜绝释放后复用
		sc.config = nil
	})

	derived := types.NewArgs(types.Arg{Key: channelargs.KeySNIHost, Value: serverName})
	logger.Debug("TLS 安全连接器已创建", "target", target, "serverName", serverName)
	return sc, derived, nil
}

// schemeSecurable 返回 scheme 的目标是否可承载 TLS 握手
func schemeSecurable(scheme string) bool {
	switch scheme {
	case "unix", "unix-abstract":
		return false
	default:
		return true
	}
}

// hostFromEndpoint 从 "host:port" 形式中取出主机名
func hostFromEndpoint(endpoint string) string {
	if host, _, err := net.SplitHostPort(endpoint); err == nil {
		return host
	}
	// 无端口的裸主机名
	return strings.TrimSpace(endpoint)
}

// ============================================================================
//                              tlsConnector
// ============================================================================

// tlsConnector TLS 安全连接器
type tlsConnector struct {
	baseConnector

	config *tls.Config
}

var _ interfaces.SecurityConnector = (*tlsConnector)(nil)

// AddHandshakers 安装 TLS 客户端握手步骤
func (c *tlsConnector) AddHandshakers(hm interfaces.HandshakeManager) {
	if c.config == nil {
		panic(ErrConnectorReleased)
	}
	hm.Add(&tlsHandshaker{config: c.config})
}

// ============================================================================
//                              tlsHandshaker
// ============================================================================

// tlsHandshaker 把普通连接升级为 TLS 客户端连接
type tlsHandshaker struct {
	config *tls.Config
}

var _ interfaces.Handshaker = (*tlsHandshaker)(nil)

// Name 返回握手步骤名称
func (h *tlsHandshaker) Name() string {
	return "tls"
}

// Handshake 执行 TLS 客户端握手
func (h *tlsHandshaker) Handshake(ctx context.Context, conn net.Conn) (net.Conn, error) {
	tlsConn := tls.Client(conn, h.config)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	return tlsConn, nil
}
