package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// ============================================================================
//                              握手链
// ============================================================================

// handshakeChain 按序执行的握手步骤集合
//
// 实现 interfaces.HandshakeManager；安全连接器通过 Add
// 把自己的握手步骤安装进来。
type handshakeChain struct {
	steps []interfaces.Handshaker
}

var _ interfaces.HandshakeManager = (*handshakeChain)(nil)

// Add 追加一个握手步骤
func (c *handshakeChain) Add(h interfaces.Handshaker) {
	c.steps = append(c.steps, h)
}

// run 在连接上依次执行全部握手步骤
//
// 任一步骤失败时关闭当前连接并返回错误。
func (c *handshakeChain) run(ctx context.Context, conn net.Conn) (net.Conn, error) {
	for _, h := range c.steps {
		next, err := h.Handshake(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrHandshakeFailed, h.Name(), err)
		}
		conn = next
	}
	return conn, nil
}
