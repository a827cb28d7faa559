package transport

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// Module 传输模块
var Module = fx.Module("core_transport",
	fx.Provide(ProvideConnectorFactory),
)

// Params 模块输入依赖
type Params struct {
	fx.In

	Config *Config `optional:"true"`
}

// Result 模块输出服务
type Result struct {
	fx.Out

	ConnectorFactory interfaces.ConnectorFactory
}

// ProvideConnectorFactory 提供 TCP 连接器工厂
func ProvideConnectorFactory(p Params) Result {
	cfg := DefaultConfig()
	if p.Config != nil {
		cfg = *p.Config
	}
	return Result{ConnectorFactory: NewTCPFactory(cfg)}
}
