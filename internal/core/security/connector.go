package security

import (
	"github.com/dep2p/go-rpcchannel/internal/util/refcount"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
)

var logger = log.Logger("core/security")

// ============================================================================
//                              baseConnector - 公共生命周期
// ============================================================================

// baseConnector 各连接器实现共享的生命周期骨架
//
// 构造后 target/serverName 不可变；唯一的可变状态是引用计数。
// 计数归零时调用 release 释放安全材料，之后连接器不得再使用。
type baseConnector struct {
	refs       *refcount.RefCount
	target     string
	serverName string

	// release 释放持有的安全材料，计数归零时恰好调用一次
	release func()
}

func newBaseConnector(target, serverName string, release func()) baseConnector {
	return baseConnector{
		refs:       refcount.New(),
		target:     target,
		serverName: serverName,
		release:    release,
	}
}

// Ref 增加一个引用
func (c *baseConnector) Ref() {
	c.refs.Ref()
}

// Unref 释放一个引用，归零时释放安全材料
func (c *baseConnector) Unref() {
	if c.refs.Unref() {
		if c.release != nil {
			c.release()
		}
		logger.Debug("安全连接器已释放", "target", c.target)
	}
}

// Target 返回连接器绑定的目标
func (c *baseConnector) Target() string {
	return c.target
}

// ServerName 返回安全握手使用的服务器名
func (c *baseConnector) ServerName() string {
	return c.serverName
}

// RefCount 返回当前引用计数（测试与诊断用）
func (c *baseConnector) RefCount() int32 {
	return c.refs.Count()
}
