package channel

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              lameChannel - 残废通道
// ============================================================================

// lameChannel 携带固定失败状态的哨兵通道
//
// 不做任何通信；所有操作立即以构造时给定的状态失败。
// 用于在构造失败时仍向调用方返回一个可用作通道的对象，
// 把错误面推迟到首次使用。
type lameChannel struct {
	id     string
	target string
	status types.Status
	closed atomic.Bool
}

var _ interfaces.Channel = (*lameChannel)(nil)

// NewLame 构造残废通道（纯分配，永不失败）
func NewLame(target string, code types.Code, message string) interfaces.Channel {
	logger.Debug("残废通道已创建", "target", target, "code", code, "message", message)
	return &lameChannel{
		id:     uuid.NewString(),
		target: target,
		status: types.NewStatus(code, message),
	}
}

// ID 返回通道标识
func (c *lameChannel) ID() string {
	return c.id
}

// Target 返回通道目标
func (c *lameChannel) Target() string {
	return c.target
}

// Status 返回固定失败状态
func (c *lameChannel) Status() types.Status {
	return c.status
}

// State 返回连接状态
func (c *lameChannel) State() types.ConnectivityState {
	if c.closed.Load() {
		return types.StateShutdown
	}
	return types.StateTransientFailure
}

// Invoke 立即以固定状态失败
func (c *lameChannel) Invoke(_ context.Context, _ string) error {
	return c.status.Err()
}

// Close 关闭通道（幂等，无资源可释放）
func (c *lameChannel) Close() error {
	c.closed.Store(true)
	return nil
}
