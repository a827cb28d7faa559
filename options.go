package rpcchannel

import (
	"crypto/tls"
	"time"

	"github.com/dep2p/go-rpcchannel/internal/core/resolver"
	"github.com/dep2p/go-rpcchannel/internal/core/security"
	"github.com/dep2p/go-rpcchannel/internal/core/transport"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 额外的解析器构造器（dns 与 passthrough 之外）
	resolverBuilders []interfaces.ResolverBuilder

	// 替换默认 TCP 传输的连接器工厂
	connectorFactory interfaces.ConnectorFactory

	// 传输配置
	dialTimeout time.Duration
	keepAlive   time.Duration

	// dns 解析配置
	dnsRefreshInterval time.Duration
	dnsLookupTimeout   time.Duration
	dnsDefaultPort     string

	// 默认凭证配置（CreateChannel 使用）
	securityProtocol   string
	tlsConfig          *tls.Config
	serverNameOverride string
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// transportConfig 转换为传输层配置
func (o *options) transportConfig() transport.Config {
	cfg := transport.DefaultConfig()
	if o.dialTimeout > 0 {
		cfg.DialTimeout = o.dialTimeout
	}
	if o.keepAlive > 0 {
		cfg.KeepAlive = o.keepAlive
	}
	return cfg
}

// dnsConfig 转换为 dns 解析器配置
func (o *options) dnsConfig() resolver.DNSConfig {
	cfg := resolver.DefaultDNSConfig()
	if o.dnsRefreshInterval > 0 {
		cfg.RefreshInterval = o.dnsRefreshInterval
	}
	if o.dnsLookupTimeout > 0 {
		cfg.LookupTimeout = o.dnsLookupTimeout
	}
	if o.dnsDefaultPort != "" {
		cfg.DefaultPort = o.dnsDefaultPort
	}
	return cfg
}

// securityConfig 转换为安全模块配置
func (o *options) securityConfig() security.Config {
	cfg := security.DefaultConfig()
	if o.securityProtocol != "" {
		cfg.Protocol = o.securityProtocol
	}
	cfg.TLS = o.tlsConfig
	cfg.ServerNameOverride = o.serverNameOverride
	return cfg
}

// WithResolverBuilder 注册一个额外的解析器构造器
//
// 与内置的 dns、passthrough 并存；scheme 冲突时后注册者覆盖。
func WithResolverBuilder(b interfaces.ResolverBuilder) Option {
	return func(o *options) error {
		if b == nil {
			return ErrNilResolverBuilder
		}
		o.resolverBuilders = append(o.resolverBuilders, b)
		return nil
	}
}

// WithConnectorFactory 替换默认的 TCP 连接器工厂
//
// 主要用于测试与自定义传输。
func WithConnectorFactory(cf interfaces.ConnectorFactory) Option {
	return func(o *options) error {
		if cf == nil {
			return ErrNilConnectorFactory
		}
		o.connectorFactory = cf
		return nil
	}
}

// WithDialTimeout 设置传输拨号超时
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return ErrInvalidDuration
		}
		o.dialTimeout = d
		return nil
	}
}

// WithKeepAlive 设置 TCP 保活间隔
func WithKeepAlive(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return ErrInvalidDuration
		}
		o.keepAlive = d
		return nil
	}
}

// WithDNSRefreshInterval 设置 dns 解析的周期刷新间隔
func WithDNSRefreshInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return ErrInvalidDuration
		}
		o.dnsRefreshInterval = d
		return nil
	}
}

// WithDNSLookupTimeout 设置单次 dns 查询超时
func WithDNSLookupTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return ErrInvalidDuration
		}
		o.dnsLookupTimeout = d
		return nil
	}
}

// WithDNSDefaultPort 设置目标未携带端口时补全的默认端口
func WithDNSDefaultPort(port string) Option {
	return func(o *options) error {
		o.dnsDefaultPort = port
		return nil
	}
}

// WithTLSConfig 设置默认凭证使用的 TLS 配置
//
// 仅影响 CreateChannel 使用的默认凭证；显式传入凭证的
// CreateSecureChannel 不受影响。
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) error {
		o.tlsConfig = cfg
		return nil
	}
}

// WithServerNameOverride 覆盖默认凭证派生的握手服务器名（测试用）
func WithServerNameOverride(name string) Option {
	return func(o *options) error {
		o.serverNameOverride = name
		return nil
	}
}

// WithInsecureDefault 把默认凭证切换为明文
//
// 仅用于测试与可信环境。
func WithInsecureDefault() Option {
	return func(o *options) error {
		o.securityProtocol = "insecure"
		return nil
	}
}
