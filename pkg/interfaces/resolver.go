// Package interfaces 定义 go-rpcchannel 公共接口
//
// 本文件定义名称解析契约，对应 internal/core/resolver/ 实现。
// 解析算法本身（DNS、服务发现）在本模块之外。
package interfaces

import "github.com/dep2p/go-rpcchannel/pkg/types"

// ============================================================================
//                              Watcher - 地址观察者
// ============================================================================

// Watcher 接收解析器产出的地址更新
//
// 由通道栈实现；解析器在其生命周期内持续推送更新。
// 回调可能来自解析器的后台 goroutine，实现需自行保证并发安全。
type Watcher interface {
	// OnAddresses 推送一组最新地址（全量替换语义）
	OnAddresses(addrs []types.Address)

	// OnError 推送一次解析失败（解析器会自行重试）
	OnError(err error)
}

// ============================================================================
//                              Resolver
// ============================================================================

// Resolver 异步名称解析器
//
// 与一个通道一一绑定，在构造时即开始解析并向 Watcher 推送更新。
type Resolver interface {
	// ResolveNow 提示解析器尽快重新解析（尽力而为，可被合并）
	ResolveNow()

	// Close 停止解析并释放后台资源
	//
	// 幂等；返回后不再有回调送达 Watcher。
	Close() error
}

// ============================================================================
//                              ResolverBuilder
// ============================================================================

// ResolverBuilder 按 scheme 构造解析器
type ResolverBuilder interface {
	// Scheme 返回本构造器负责的目标 scheme（如 "dns"）
	Scheme() string

	// Build 为目标启动一个解析器并绑定观察者
	//
	// 成功即表示异步解析已经启动；目标不可解析为有效标识时返回错误。
	Build(target types.Target, args *types.Args, w Watcher) (Resolver, error)
}
