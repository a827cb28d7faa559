// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义通道工厂能力契约，对应 internal/core/factory/ 实现。
package interfaces

import (
	"context"

	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              Subchannel
// ============================================================================

// SubchannelArgs 构造子通道所需的地址级参数
type SubchannelArgs struct {
	// Address 本子通道负责的单个地址
	Address types.Address

	// ServerName 安全握手使用的服务器名（可为空，回落到地址自带的）
	ServerName string

	// Args 通道级参数（已合并的不可变集）
	Args *types.Args
}

// Subchannel 单个连接尝试单元
//
// 构造本身永不失败；建连失败在之后的连接尝试中异步暴露，
// 通过连接状态观察。
type Subchannel interface {
	// Address 返回子通道负责的地址
	Address() types.Address

	// Connect 异步发起连接尝试（幂等：已在连接或已就绪时为空操作）
	Connect(ctx context.Context)

	// State 返回当前连接状态
	State() types.ConnectivityState

	// Close 关闭子通道并中止未完成的连接尝试
	Close() error
}

// ============================================================================
//                              ClientChannelFactory
// ============================================================================

// ClientChannelFactory 通道工厂能力
//
// 共享所有权的引用计数对象，持有安全连接器的一个长期引用。
// 构造路径创建它时计数为 1；它派生的对象（如通道栈）可以
// 另行取引用。计数归零时释放安全连接器引用并失效。
type ClientChannelFactory interface {
	// Ref 增加一个引用
	Ref()

	// Unref 释放一个引用（可多持有者并发调用）
	Unref()

	// CreateSubchannel 构造一个子通道
	//
	// 组装传输连接器与安全握手链。本层永不失败；
	// 下游连接失败在实际连接尝试时异步暴露。
	CreateSubchannel(args SubchannelArgs) Subchannel

	// CreateChannel 构造通道并为其绑定解析器
	//
	// 解析器创建失败时，已部分构造的通道会被释放后
	// 返回错误，不会有悬挂的通道对象逃逸。
	CreateChannel(target string, kind types.ChannelKind, args *types.Args) (Channel, error)
}
