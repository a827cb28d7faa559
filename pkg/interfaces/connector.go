// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义传输连接器契约，对应 internal/core/transport/ 实现。
// 连接器的构造是纯对象组装，不做任何 IO；实际建连在之后异步进行。
package interfaces

import (
	"context"
	"net"

	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// Connector 传输连接器
//
// 一个连接器封装"建立底层连接 + 驱动握手链"的完整过程，
// 供子通道在每次连接尝试时调用。
type Connector interface {
	// Name 返回连接器名称（用于日志）
	Name() string

	// Connect 对指定地址发起一次连接尝试
	//
	// 建立底层连接后依次执行已安装的握手步骤，
	// 返回握手完成的连接。失败时底层连接已被关闭。
	Connect(ctx context.Context, addr types.Address) (net.Conn, error)
}

// ConnectorFactory 传输连接器工厂
//
// 纯构造函数：组装连接器对象并把安全连接器的握手步骤
// 安装到握手链上，不做任何 IO。
type ConnectorFactory interface {
	// New 为指定服务器名构造连接器
	//
	// sc 为 nil 时构造不带安全握手的连接器。
	New(serverName string, sc SecurityConnector) Connector
}
