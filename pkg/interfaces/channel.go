// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义用户侧通道句柄，对应 internal/core/channel/ 实现。
package interfaces

import (
	"context"

	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// Channel 用户侧通道句柄
//
// 两种形态：
//   - 活通道：背后有解析器与子通道机制，地址更新驱动连接建立
//   - 残废通道（lame channel）：不做任何通信，所有操作以固定状态失败
//
// 构造路径保证总是返回一个可用作通道的对象（或在文档注明的
// 唯一情形下返回 nil）；错误延迟到首次使用时暴露。
type Channel interface {
	// ID 返回通道的唯一标识（用于日志与诊断）
	ID() string

	// Target 返回通道的目标地址
	Target() string

	// State 返回通道当前的连接状态
	State() types.ConnectivityState

	// Invoke 在通道上执行一次调用
	//
	// 残废通道立即返回其固定状态对应的错误。
	Invoke(ctx context.Context, method string) error

	// Close 关闭通道并释放其持有的全部资源（幂等）
	Close() error
}
