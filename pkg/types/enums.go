package types

// ============================================================================
//                              ConnectivityState - 连接状态
// ============================================================================

// ConnectivityState 通道/子通道的连接状态
type ConnectivityState int

const (
	// StateIdle 空闲，尚未发起连接
	StateIdle ConnectivityState = iota
	// StateConnecting 正在建立连接
	StateConnecting
	// StateReady 连接就绪可用
	StateReady
	// StateTransientFailure 暂时性失败（会重试）
	StateTransientFailure
	// StateShutdown 已关闭，不再使用
	StateShutdown
)

// String 返回连接状态的字符串表示
func (s ConnectivityState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateTransientFailure:
		return "transient_failure"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              ChannelKind - 通道类型
// ============================================================================

// ChannelKind 构造的通道类型
type ChannelKind int

const (
	// ChannelKindRegular 常规客户端通道
	ChannelKindRegular ChannelKind = iota
	// ChannelKindLoadBalancing 负载均衡内部通道
	ChannelKindLoadBalancing
)

// String 返回通道类型的字符串表示
func (k ChannelKind) String() string {
	switch k {
	case ChannelKindRegular:
		return "regular"
	case ChannelKindLoadBalancing:
		return "load_balancing"
	default:
		return "unknown"
	}
}
