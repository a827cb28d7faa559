package resolver

import (
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              passthrough 解析器
// ============================================================================

// passthroughBuilder 原样交付 endpoint 的解析器构造器
//
// 不做任何名称解析，适用于已是 "host:port" 形式的目标。
type passthroughBuilder struct{}

// NewPassthroughBuilder 创建 passthrough 构造器
func NewPassthroughBuilder() interfaces.ResolverBuilder {
	return passthroughBuilder{}
}

// Scheme 返回 "passthrough"
func (passthroughBuilder) Scheme() string {
	return "passthrough"
}

// Build 构造解析器并立即交付唯一地址
func (passthroughBuilder) Build(target types.Target, _ *types.Args, w interfaces.Watcher) (interfaces.Resolver, error) {
	if target.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	r := &passthroughResolver{endpoint: target.Endpoint, watcher: w}
	r.deliver()
	return r, nil
}

// passthroughResolver 一次性交付固定地址
type passthroughResolver struct {
	endpoint string
	watcher  interfaces.Watcher
}

var _ interfaces.Resolver = (*passthroughResolver)(nil)

func (r *passthroughResolver) deliver() {
	r.watcher.OnAddresses([]types.Address{{Addr: r.endpoint}})
}

// ResolveNow 重新交付固定地址
func (r *passthroughResolver) ResolveNow() {
	r.deliver()
}

// Close 空操作（无后台资源）
func (r *passthroughResolver) Close() error {
	return nil
}
