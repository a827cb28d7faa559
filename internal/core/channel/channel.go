package channel

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("core/channel")

// ============================================================================
//                              Channel - 活通道
// ============================================================================

// Channel 活通道
//
// target/kind/args 构造后不可变；所有可变状态集中在通道栈。
type Channel struct {
	id     string
	target string
	kind   types.ChannelKind
	args   *types.Args

	stack  *Stack
	closed atomic.Bool
}

var _ interfaces.Channel = (*Channel)(nil)

// New 构造活通道对象
//
// 纯对象组装；解析器与工厂能力由之后的 FinishInit 绑定。
func New(target string, kind types.ChannelKind, args *types.Args) *Channel {
	ch := &Channel{
		id:     uuid.NewString(),
		target: target,
		kind:   kind,
		args:   args,
	}
	ch.stack = newStack(ch)
	logger.Debug("通道对象已创建", "id", ch.id, "target", target, "kind", kind)
	return ch
}

// ID 返回通道标识
func (c *Channel) ID() string {
	return c.id
}

// Target 返回通道目标
func (c *Channel) Target() string {
	return c.target
}

// Kind 返回通道类型
func (c *Channel) Kind() types.ChannelKind {
	return c.kind
}

// Args 返回已合并的不可变参数集
func (c *Channel) Args() *types.Args {
	return c.args
}

// Stack 返回通道栈
func (c *Channel) Stack() *Stack {
	return c.stack
}

// State 返回通道当前的连接状态
func (c *Channel) State() types.ConnectivityState {
	if c.closed.Load() {
		return types.StateShutdown
	}
	return c.stack.aggregateState()
}

// Invoke 在通道上执行一次调用
//
// 没有就绪子通道时以 Unavailable 失败；调用分发路径
// 在本模块之外，这里只做到子通道选择为止。
func (c *Channel) Invoke(ctx context.Context, method string) error {
	if c.closed.Load() {
		return types.NewStatus(types.CodeUnavailable, ErrChannelClosed.Error()).Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.stack.hasReady() {
		return types.NewStatus(types.CodeUnavailable, "no ready subchannel for "+method).Err()
	}
	return nil
}

// Close 关闭通道并释放其持有的全部资源（幂等）
func (c *Channel) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	logger.Debug("通道关闭", "id", c.id, "target", c.target)
	return c.stack.shutdown()
}
