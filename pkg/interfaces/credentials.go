// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义 Credentials 凭证接口，对应 internal/core/security/ 中的实现。
package interfaces

import "github.com/dep2p/go-rpcchannel/pkg/types"

// Credentials 通道凭证
//
// Credentials 描述"如何对目标进行身份认证"，由调用方提供，
// 在整个通道构造过程中只被借用，构造路径不持有其所有权。
// 实现必须是不可变的，可安全地用于多次通道构造。
type Credentials interface {
	// NewConnector 由凭证与目标派生安全连接器
	//
	// 仅做凭证与目标配对的策略校验与安全材料派生，不做任何网络 IO。
	// 成功时返回引用计数为 1 的连接器，以及可选的派生参数片段
	// （如由目标派生的 SNI 主机名），派生参数由调用方负责合并。
	//
	// 凭证对该目标不可用、或目标 scheme 不支持安全传输时返回错误。
	NewConnector(target string, args *types.Args) (SecurityConnector, *types.Args, error)
}
