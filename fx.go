package rpcchannel

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-rpcchannel/internal/core/factory"
	"github.com/dep2p/go-rpcchannel/internal/core/metrics"
	"github.com/dep2p/go-rpcchannel/internal/core/resolver"
	"github.com/dep2p/go-rpcchannel/internal/core/security"
	"github.com/dep2p/go-rpcchannel/internal/core/transport"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// fxStartTimeout fx 应用启动/停止超时
const fxStartTimeout = 15 * time.Second

// Module 聚合全部内部模块
//
// 供需要把通道构造嵌入自有 fx 应用的调用方使用；
// 各模块的配置（resolver.DNSConfig、transport.Config、
// security.Config）均为可选注入，缺省时使用默认值。
func Module() fx.Option {
	return fx.Options(
		resolver.Module,
		security.Module,
		transport.Module,
		metrics.Module,
		factory.Module,
	)
}

// buildFxApp 构建 Fx 应用
//
// 组装内部模块并把共享服务回填到 Builder：
//  1. 解析层：注册表（内置 dns、passthrough + 用户扩展）
//  2. 安全层：默认凭证（TLS 或明文）
//  3. 传输层：TCP 连接器工厂（可被选项整体替换）
//  4. 计量与工厂能力构造器
func buildFxApp(o *options, b *Builder) *fx.App {
	modules := []fx.Option{
		fx.Supply(ptr(o.dnsConfig())),
		fx.Supply(ptr(o.securityConfig())),
		resolver.Module,
		security.Module,
		metrics.Module,
		factory.Module,
	}

	// 传输层：用户提供的连接器工厂优先
	if o.connectorFactory != nil {
		modules = append(modules, fx.Supply(
			fx.Annotate(o.connectorFactory, fx.As(new(interfaces.ConnectorFactory))),
		))
	} else {
		modules = append(modules,
			fx.Supply(ptr(o.transportConfig())),
			transport.Module,
		)
	}

	// 额外的解析器构造器进入注册组
	for _, rb := range o.resolverBuilders {
		modules = append(modules, fx.Supply(
			fx.Annotate(rb,
				fx.As(new(interfaces.ResolverBuilder)),
				fx.ResultTags(`group:"resolver_builders"`),
			),
		))
	}

	modules = append(modules,
		fx.Populate(&b.maker, &b.reporter, &b.creds),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	return fx.New(modules...)
}

func ptr[T any](v T) *T {
	return &v
}

// startApp 启动 Fx 应用
func startApp(app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), fxStartTimeout)
	defer cancel()
	return app.Start(ctx)
}

// stopApp 停止 Fx 应用
func stopApp(app *fx.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), fxStartTimeout)
	defer cancel()
	return app.Stop(ctx)
}
