package factory

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-rpcchannel/internal/core/metrics"
	"github.com/dep2p/go-rpcchannel/internal/core/resolver"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// Module 通道工厂模块
var Module = fx.Module("core_factory",
	fx.Provide(ProvideMaker),
)

// Params 模块输入依赖
type Params struct {
	fx.In

	Registry         *resolver.Registry
	ConnectorFactory interfaces.ConnectorFactory
	Reporter         *metrics.Reporter `optional:"true"`
}

// Result 模块输出服务
type Result struct {
	fx.Out

	Maker *Maker
}

// ProvideMaker 提供工厂能力构造器
func ProvideMaker(p Params) Result {
	return Result{Maker: NewMaker(p.Registry, p.ConnectorFactory, p.Reporter)}
}
