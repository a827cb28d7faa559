package resolver

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// Module 解析器模块
var Module = fx.Module("core_resolver",
	fx.Provide(ProvideRegistry),
)

// Params 模块输入依赖
type Params struct {
	fx.In

	// DNSConfig dns 解析器配置（可选）
	DNSConfig *DNSConfig `optional:"true"`

	// Extra 额外注册的解析器构造器（可选）
	Extra []interfaces.ResolverBuilder `group:"resolver_builders"`
}

// Result 模块输出服务
type Result struct {
	fx.Out

	Registry *Registry
}

// ProvideRegistry 提供预注册 dns 与 passthrough 的注册表
func ProvideRegistry(p Params) Result {
	dnsCfg := DefaultDNSConfig()
	if p.DNSConfig != nil {
		dnsCfg = *p.DNSConfig
	}

	r := NewRegistry()
	r.Register(NewDNSBuilder(dnsCfg))
	r.Register(NewPassthroughBuilder())
	for _, b := range p.Extra {
		r.Register(b)
	}
	return Result{Registry: r}
}
