package channelargs

import (
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              参数键
// ============================================================================

const (
	// KeySecurityConnector 安全连接器回指项的键
	KeySecurityConnector = "rpcchannel.security_connector"

	// KeySNIHost 安全握手服务器名（连接器派生参数）的键
	KeySNIHost = "rpcchannel.sni_host"
)

// ============================================================================
//                              合并操作
// ============================================================================

// HasSecurityConnector 返回参数集中是否已存在安全连接器项
//
// 通道构造在创建连接器之前用它做前置检查。
func HasSecurityConnector(args *types.Args) bool {
	return args.Contains(KeySecurityConnector)
}

// SecurityConnectorFromArgs 取出参数集中的安全连接器
//
// 不存在或类型不符时返回 nil。
func SecurityConnectorFromArgs(args *types.Args) interfaces.SecurityConnector {
	v, ok := args.Get(KeySecurityConnector)
	if !ok {
		return nil
	}
	sc, ok := v.(interfaces.SecurityConnector)
	if !ok {
		return nil
	}
	return sc
}

// Merge 合并调用方参数、连接器派生参数与安全连接器回指项
//
// 合并顺序：derived 在前（优先级低），base 在后（覆盖），
// 最后追加安全连接器回指项。结果是独立所有的不可变集，
// 与调用方原参数集无任何别名。
//
// 前置条件：base 中不含安全连接器项（由调用方在创建连接器
// 之前检查）。这里仍做防御性复查。
func Merge(base, derived *types.Args, sc interfaces.SecurityConnector) (*types.Args, error) {
	if sc == nil {
		return nil, ErrNilConnector
	}
	if HasSecurityConnector(base) {
		return nil, ErrConflictingSecurityState
	}
	if HasSecurityConnector(derived) {
		// 派生参数由连接器自己产生，不应携带回指项
		return nil, ErrDuplicateEntry
	}

	merged := derived.CopyAndAdd(base.Items()...)
	merged = merged.CopyAndAdd(types.Arg{Key: KeySecurityConnector, Value: sc})
	return merged, nil
}
