package resolver

import (
	"fmt"
	"sync"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("core/resolver")

// ============================================================================
//                              Registry
// ============================================================================

// Registry scheme 到解析器构造器的注册表
//
// 并发安全；同名 scheme 后注册者覆盖先注册者。
type Registry struct {
	mu       sync.RWMutex
	builders map[string]interfaces.ResolverBuilder
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]interfaces.ResolverBuilder),
	}
}

// NewDefaultRegistry 创建预注册 dns 与 passthrough 的注册表
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewDNSBuilder(DefaultDNSConfig()))
	r.Register(NewPassthroughBuilder())
	return r
}

// Register 注册一个解析器构造器
func (r *Registry) Register(b interfaces.ResolverBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[b.Scheme()] = b
}

// Lookup 按 scheme 查找构造器
func (r *Registry) Lookup(scheme string) (interfaces.ResolverBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[scheme]
	return b, ok
}

// Schemes 返回已注册的 scheme 列表（仅诊断用）
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builders))
	for s := range r.builders {
		out = append(out, s)
	}
	return out
}

// Build 为目标构造并启动一个解析器
//
// 目标文法非法、scheme 未注册或构造器拒绝该目标时返回错误。
// 这是通道构造中唯一以错误（而非残废通道）上报失败的步骤。
func (r *Registry) Build(target string, args *types.Args, w interfaces.Watcher) (interfaces.Resolver, error) {
	if w == nil {
		return nil, ErrNilWatcher
	}

	tgt, err := types.ParseTarget(target)
	if err != nil {
		return nil, fmt.Errorf("resolver: parse target: %w", err)
	}

	b, ok := r.Lookup(tgt.Scheme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, tgt.Scheme)
	}

	res, err := b.Build(tgt, args, w)
	if err != nil {
		return nil, err
	}
	logger.Debug("解析器已启动", "target", target, "scheme", tgt.Scheme)
	return res, nil
}
