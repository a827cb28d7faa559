package resolver

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              配置
// ============================================================================

// LookupHostFunc 主机名查询函数（可注入，测试用）
type LookupHostFunc func(ctx context.Context, host string) ([]string, error)

// DNSConfig dns 解析器配置
type DNSConfig struct {
	// RefreshInterval 周期性重新解析的间隔
	RefreshInterval time.Duration

	// LookupTimeout 单次查询超时
	LookupTimeout time.Duration

	// DefaultPort endpoint 未携带端口时使用的端口
	DefaultPort string

	// CacheSize 查询结果缓存容量（条目数）
	CacheSize int

	// CacheTTL 缓存条目有效期
	CacheTTL time.Duration

	// LookupHost 自定义查询函数（nil 使用系统解析器）
	LookupHost LookupHostFunc

	// Clock 时钟源（nil 使用真实时钟；测试注入 mock）
	Clock clock.Clock
}

// DefaultDNSConfig 返回默认配置
func DefaultDNSConfig() DNSConfig {
	return DNSConfig{
		RefreshInterval: 30 * time.Minute,
		LookupTimeout:   10 * time.Second,
		DefaultPort:     "443",
		CacheSize:       128,
		CacheTTL:        time.Minute,
	}
}

// ============================================================================
//                              dnsBuilder
// ============================================================================

// dnsBuilder dns 解析器构造器
//
// 全部解析器实例共享查询缓存与去重组：同一主机名的并发查询
// 只有一次真正落到网络上。
type dnsBuilder struct {
	config DNSConfig
	clock  clock.Clock
	lookup LookupHostFunc

	cache *expirable.LRU[string, []string]
	sf    singleflight.Group
}

// NewDNSBuilder 创建 dns 构造器
func NewDNSBuilder(config DNSConfig) interfaces.ResolverBuilder {
	def := DefaultDNSConfig()
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = def.RefreshInterval
	}
	if config.LookupTimeout <= 0 {
		config.LookupTimeout = def.LookupTimeout
	}
	if config.DefaultPort == "" {
		config.DefaultPort = def.DefaultPort
	}
	if config.CacheSize <= 0 {
		config.CacheSize = def.CacheSize
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = def.CacheTTL
	}

	b := &dnsBuilder{
		config: config,
		clock:  config.Clock,
		lookup: config.LookupHost,
		cache:  expirable.NewLRU[string, []string](config.CacheSize, nil, config.CacheTTL),
	}
	if b.clock == nil {
		b.clock = clock.New()
	}
	if b.lookup == nil {
		b.lookup = func(ctx context.Context, host string) ([]string, error) {
			return net.DefaultResolver.LookupHost(ctx, host)
		}
	}
	return b
}

// Scheme 返回 "dns"
func (b *dnsBuilder) Scheme() string {
	return "dns"
}

// Build 构造解析器并启动后台解析循环
func (b *dnsBuilder) Build(target types.Target, _ *types.Args, w interfaces.Watcher) (interfaces.Resolver, error) {
	if target.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	host, port, err := net.SplitHostPort(target.Endpoint)
	if err != nil {
		// 无端口的裸主机名，使用默认端口
		host, port = target.Endpoint, b.config.DefaultPort
	}
	if host == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyEndpoint, target.Endpoint)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &dnsResolver{
		builder:    b,
		host:       host,
		port:       port,
		watcher:    w,
		ctx:        ctx,
		cancel:     cancel,
		resolveNow: make(chan struct{}, 1),
	}

	r.wg.Add(1)
	go r.watchLoop()
	return r, nil
}

// resolveHost 带缓存与去重的主机名解析
func (b *dnsBuilder) resolveHost(ctx context.Context, host string) ([]string, error) {
	if ips, ok := b.cache.Get(host); ok {
		return ips, nil
	}

	v, err, _ := b.sf.Do(host, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(ctx, b.config.LookupTimeout)
		defer cancel()

		ips, err := b.lookup(lookupCtx, host)
		if err != nil {
			return nil, err
		}
		b.cache.Add(host, ips)
		return ips, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// ============================================================================
//                              dnsResolver
// ============================================================================

// dnsResolver 单个通道的 dns 解析器
type dnsResolver struct {
	builder *dnsBuilder
	host    string
	port    string
	watcher interfaces.Watcher

	ctx        context.Context
	cancel     context.CancelFunc
	resolveNow chan struct{}

	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ interfaces.Resolver = (*dnsResolver)(nil)

// watchLoop 后台解析循环：启动即解析一次，之后周期性刷新
func (r *dnsResolver) watchLoop() {
	defer r.wg.Done()

	r.resolveOnce()

	ticker := r.builder.clock.Ticker(r.builder.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.resolveOnce()
		case <-r.resolveNow:
			r.resolveOnce()
		}
	}
}

// resolveOnce 执行一次解析并推送结果
func (r *dnsResolver) resolveOnce() {
	ips, err := r.builder.resolveHost(r.ctx, r.host)
	if err != nil {
		if r.ctx.Err() != nil {
			return
		}
		logger.Warn("DNS 解析失败", "host", r.host, "error", err)
		r.watcher.OnError(err)
		return
	}

	addrs := make([]types.Address, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, types.Address{
			Addr:       net.JoinHostPort(ip, r.port),
			ServerName: r.host,
		})
	}
	logger.Debug("DNS 解析完成", "host", r.host, "addresses", len(addrs))
	r.watcher.OnAddresses(addrs)
}

// ResolveNow 提示尽快重新解析（可被合并）
func (r *dnsResolver) ResolveNow() {
	select {
	case r.resolveNow <- struct{}{}:
	default:
	}
}

// Close 停止解析循环（幂等）
func (r *dnsResolver) Close() error {
	r.closeOnce.Do(func() {
		r.cancel()
		r.wg.Wait()
	})
	return nil
}
