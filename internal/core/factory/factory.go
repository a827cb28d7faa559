package factory

import (
	"fmt"

	"github.com/dep2p/go-rpcchannel/internal/core/channel"
	"github.com/dep2p/go-rpcchannel/internal/core/metrics"
	"github.com/dep2p/go-rpcchannel/internal/core/resolver"
	"github.com/dep2p/go-rpcchannel/internal/core/subchannel"
	"github.com/dep2p/go-rpcchannel/internal/util/refcount"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("core/factory")

// ============================================================================
//                              Maker
// ============================================================================

// Maker 工厂能力的构造器
//
// 持有跨通道共享的依赖（解析器注册表、传输连接器工厂），
// 每次通道构造用它产出一个新的工厂能力。
type Maker struct {
	registry   *resolver.Registry
	connectors interfaces.ConnectorFactory
	reporter   *metrics.Reporter
}

// NewMaker 创建工厂能力构造器
//
// reporter 可为 nil（不计量）。
func NewMaker(registry *resolver.Registry, connectors interfaces.ConnectorFactory, reporter *metrics.Reporter) *Maker {
	return &Maker{
		registry:   registry,
		connectors: connectors,
		reporter:   reporter,
	}
}

// New 为一次通道构造产出工厂能力
//
// 返回的能力引用计数为 1，并对安全连接器取一个长期引用
// （调用方自己的引用保持不动，用于对称清理）。
func (m *Maker) New(sc interfaces.SecurityConnector) (interfaces.ClientChannelFactory, error) {
	if sc == nil {
		return nil, ErrNilSecurityConnector
	}
	sc.Ref()
	return &clientChannelFactory{
		refs:       refcount.New(),
		sc:         sc,
		registry:   m.registry,
		connectors: m.connectors,
		reporter:   m.reporter,
	}, nil
}

// ============================================================================
//                              clientChannelFactory
// ============================================================================

// clientChannelFactory 通道工厂能力实现
//
// 构造后除引用计数外全部字段不可变。
type clientChannelFactory struct {
	refs       *refcount.RefCount
	sc         interfaces.SecurityConnector
	registry   *resolver.Registry
	connectors interfaces.ConnectorFactory
	reporter   *metrics.Reporter
}

var _ interfaces.ClientChannelFactory = (*clientChannelFactory)(nil)

// Ref 增加一个引用
func (f *clientChannelFactory) Ref() {
	f.refs.Ref()
}

// Unref 释放一个引用；归零时释放安全连接器引用
func (f *clientChannelFactory) Unref() {
	if f.refs.Unref() {
		f.sc.Unref()
		logger.Debug("工厂能力已释放", "target", f.sc.Target())
	}
}

// RefCount 返回当前引用计数（测试与诊断用）
func (f *clientChannelFactory) RefCount() int32 {
	return f.refs.Count()
}

// CreateSubchannel 构造一个子通道
//
// 组装传输连接器与安全握手链；纯工厂，除共享的安全连接器
// 引用外不依赖任何全局状态。本层永不失败。
func (f *clientChannelFactory) CreateSubchannel(args interfaces.SubchannelArgs) interfaces.Subchannel {
	if f.refs.Count() <= 0 {
		panic(ErrFactoryReleased)
	}
	serverName := args.ServerName
	if serverName == "" {
		serverName = f.sc.ServerName()
	}
	connector := f.connectors.New(serverName, f.sc)
	if f.reporter != nil {
		f.reporter.RecordSubchannel()
	}
	return subchannel.New(connector, args)
}

// CreateChannel 构造通道并为其绑定解析器
//
// 解析器创建失败时释放部分构造的通道并返回错误，
// 不会有悬挂的通道对象逃逸。成功时通道栈接管解析器与
// 工厂能力引用，构造方的解析器引用随即放弃。
func (f *clientChannelFactory) CreateChannel(target string, kind types.ChannelKind, args *types.Args) (interfaces.Channel, error) {
	if f.refs.Count() <= 0 {
		panic(ErrFactoryReleased)
	}
	ch := channel.New(target, kind, args)

	res, err := f.registry.Build(target, args, ch.Stack())
	if err != nil {
		// 释放部分构造的通道
		ch.Close()
		return nil, fmt.Errorf("%w: %v", ErrResolverCreation, err)
	}

	if err := ch.Stack().FinishInit(res, f); err != nil {
		res.Close()
		ch.Close()
		return nil, err
	}
	// 此后解析器由通道栈独占持有
	logger.Debug("通道已构造", "id", ch.ID(), "target", target)
	return ch, nil
}
