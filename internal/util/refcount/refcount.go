// Package refcount 提供共享所有权对象的引用计数
//
// 安全连接器与通道工厂能力都是共享所有权对象：构造后唯一的
// 可变状态就是引用计数，其余字段只读，因此读取无需加锁。
// 计数归零时触发一次性的释放回调。
package refcount

import "sync/atomic"

// RefCount 原子引用计数
//
// 零值不可用，必须用 New 创建（初始计数 1）。
type RefCount struct {
	n atomic.Int32
}

// New 创建初始计数为 1 的引用计数
func New() *RefCount {
	rc := &RefCount{}
	rc.n.Store(1)
	return rc
}

// Ref 增加一个引用
func (rc *RefCount) Ref() {
	if rc.n.Add(1) <= 1 {
		panic("refcount: ref after count reached zero")
	}
}

// Unref 释放一个引用
//
// 返回 true 表示计数恰好归零，调用方应执行释放动作。
// 多个持有者可并发调用；恰好一个调用者会得到 true。
func (rc *RefCount) Unref() bool {
	n := rc.n.Add(-1)
	if n < 0 {
		panic("refcount: unref of zero count")
	}
	return n == 0
}

// Count 返回当前计数（仅用于测试与诊断）
func (rc *RefCount) Count() int32 {
	return rc.n.Load()
}
