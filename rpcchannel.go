package rpcchannel

import (
	"sync/atomic"

	"go.uber.org/fx"

	"github.com/dep2p/go-rpcchannel/internal/core/channel"
	"github.com/dep2p/go-rpcchannel/internal/core/channelargs"
	"github.com/dep2p/go-rpcchannel/internal/core/factory"
	"github.com/dep2p/go-rpcchannel/internal/core/metrics"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("rpcchannel")

// 构造期失败写入残废通道的固定消息
const (
	msgConnectorInArgs = "Security connector exists in channel args."
	msgConnectorFailed = "Failed to create security connector."
)

// Stats 通道构造计量快照
type Stats = metrics.Stats

// ============================================================================
//                              Builder - 通道构造器
// ============================================================================

// Builder 安全通道构造器
//
// 持有跨通道共享的解析注册表、传输工厂与计量器；
// 每次 CreateSecureChannel 都是独立的构造，彼此不共享
// 安全连接器或工厂能力。Builder 并发安全。
type Builder struct {
	app      *fx.App
	maker    *factory.Maker
	reporter *metrics.Reporter
	creds    interfaces.Credentials
	closed   atomic.Bool
}

// New 创建通道构造器
func New(opts ...Option) (*Builder, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	b := &Builder{}
	b.app = buildFxApp(o, b)
	if err := startApp(b.app); err != nil {
		return nil, err
	}
	logger.Debug("通道构造器已创建")
	return b, nil
}

// CreateSecureChannel 用给定凭证构造一条安全通道
//
// 构造分五步推进：参数校验、连接器派生、配置合并、
// 工厂能力构造、通道绑定。任何一步失败都不向调用方
// 抛出同步错误，而是返回携带固定失败状态的残废通道；
// 唯一的例外是解析器创建失败，此时返回 nil。
//
// 不论成败，每条获取的引用都被对称释放：成功时安全连接器
// 由工厂能力持有、工厂能力由通道栈持有，构造期间的临时
// 引用全部归还。
func (b *Builder) CreateSecureChannel(creds interfaces.Credentials, target string, args *types.Args) interfaces.Channel {
	if b.closed.Load() {
		return b.CreateLameChannel(target, types.CodeUnavailable, ErrBuilderClosed.Error())
	}

	// 参数校验：调用方参数不允许携带安全连接器
	if channelargs.HasSecurityConnector(args) {
		logger.Warn("通道参数中已存在安全连接器", "target", target)
		return b.CreateLameChannel(target, types.CodeInternal, msgConnectorInArgs)
	}

	// 连接器派生
	if creds == nil {
		return b.CreateLameChannel(target, types.CodeInternal, msgConnectorFailed)
	}
	sc, derived, err := creds.NewConnector(target, args)
	if err != nil || sc == nil {
		logger.Warn("安全连接器创建失败", "target", target, "error", err)
		return b.CreateLameChannel(target, types.CodeInternal, msgConnectorFailed)
	}

	// 配置合并：连接器写入参数，派生项先于回写项
	merged, err := channelargs.Merge(args, derived, sc)
	if err != nil {
		sc.Unref()
		logger.Warn("通道参数合并失败", "target", target, "error", err)
		return b.CreateLameChannel(target, types.CodeInternal, msgConnectorFailed)
	}

	// 工厂能力构造（取一个连接器引用）
	f, err := b.maker.New(sc)
	if err != nil {
		sc.Unref()
		return b.CreateLameChannel(target, types.CodeInternal, msgConnectorFailed)
	}

	// 通道绑定
	ch, err := f.CreateChannel(target, types.ChannelKindRegular, merged)
	if err != nil {
		// 解析器创建失败返回 nil 而非残废通道，
		// 构造期引用在此全部归还
		f.Unref()
		sc.Unref()
		b.reporter.RecordResolverFailure()
		logger.Warn("通道构造失败", "target", target, "error", err)
		return nil
	}

	// 成功：通道栈已持有工厂能力引用，工厂能力已持有
	// 连接器引用，构造方的临时引用归还
	f.Unref()
	sc.Unref()
	b.reporter.RecordLive()
	logger.Info("安全通道已构造", "id", ch.ID(), "target", target)
	return ch
}

// CreateChannel 用构造器的默认凭证构造一条通道
//
// 默认凭证由选项决定（TLS，或 WithInsecureDefault 切换为明文）。
func (b *Builder) CreateChannel(target string, args *types.Args) interfaces.Channel {
	return b.CreateSecureChannel(b.creds, target, args)
}

// CreateInsecureChannel 构造一条明文通道
//
// 仅用于测试与可信环境。
func (b *Builder) CreateInsecureChannel(target string, args *types.Args) interfaces.Channel {
	return b.CreateSecureChannel(NewInsecureCredentials(), target, args)
}

// CreateLameChannel 构造一条携带固定失败状态的残废通道
func (b *Builder) CreateLameChannel(target string, code types.Code, message string) interfaces.Channel {
	if b.reporter != nil {
		b.reporter.RecordLame()
	}
	return channel.NewLame(target, code, message)
}

// Stats 返回构造计量快照
func (b *Builder) Stats() Stats {
	return b.reporter.Snapshot()
}

// Close 关闭构造器（幂等）
//
// 已构造的通道不受影响，由各自的 Close 释放。
func (b *Builder) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	logger.Debug("通道构造器关闭")
	return stopApp(b.app)
}
