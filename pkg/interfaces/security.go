// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义安全连接器与握手链契约，对应 internal/core/security/ 实现。
// 握手的密码学细节（TLS 状态机等）在本模块之外，这里只约定
// 连接器的生命周期语义与握手步骤的安装方式。
package interfaces

import (
	"context"
	"net"
)

// ============================================================================
//                              SecurityConnector
// ============================================================================

// SecurityConnector 安全连接器
//
// 由 Credentials 与目标派生，持有经过校验的安全材料。
// 构造完成后不可变；唯一的可变状态是引用计数。
// 最后一个持有者释放引用后，持有的安全材料随之释放，
// 此后不得再使用该连接器。
type SecurityConnector interface {
	// Ref 增加一个引用
	Ref()

	// Unref 释放一个引用
	//
	// 计数归零时释放安全材料。多个持有者可并发调用。
	Unref()

	// Target 返回连接器绑定的目标
	Target() string

	// ServerName 返回安全握手使用的服务器名（SNI）
	ServerName() string

	// AddHandshakers 向握手管理器追加本连接器的安全握手步骤
	AddHandshakers(hm HandshakeManager)
}

// ============================================================================
//                              握手链
// ============================================================================

// Handshaker 单个握手步骤
//
// 接收已建立的底层连接，完成一次握手后返回（可能被包装的）连接。
type Handshaker interface {
	// Name 返回握手步骤名称（用于日志）
	Name() string

	// Handshake 在连接上执行握手
	Handshake(ctx context.Context, conn net.Conn) (net.Conn, error)
}

// HandshakeManager 握手管理器
//
// 收集按序执行的握手步骤，由传输连接器在建连后依次驱动。
type HandshakeManager interface {
	// Add 追加一个握手步骤
	Add(h Handshaker)
}
