package security

import (
	"fmt"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              InsecureCredentials
// ============================================================================

// InsecureCredentials 明文凭证
//
// 派生的连接器不安装任何握手步骤，连接以明文传输。
// 仅用于测试环境与显式选择明文的调用方。
type InsecureCredentials struct{}

var _ interfaces.Credentials = InsecureCredentials{}

// NewInsecureCredentials 创建明文凭证
func NewInsecureCredentials() InsecureCredentials {
	return InsecureCredentials{}
}

// NewConnector 派生明文连接器
//
// 无派生参数片段；仅校验目标文法。
func (InsecureCredentials) NewConnector(target string, _ *types.Args) (interfaces.SecurityConnector, *types.Args, error) {
	tgt, err := types.ParseTarget(target)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	sc := &insecureConnector{}
	sc.baseConnector = newBaseConnector(target, hostFromEndpoint(tgt.Endpoint), nil)
	logger.Debug("明文连接器已创建", "target", target)
	return sc, nil, nil
}

// insecureConnector 明文连接器，不安装任何握手步骤
type insecureConnector struct {
	baseConnector
}

var _ interfaces.SecurityConnector = (*insecureConnector)(nil)

// AddHandshakers 空操作
func (c *insecureConnector) AddHandshakers(_ interfaces.HandshakeManager) {}
