package channel

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-rpcchannel/internal/core/channelargs"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// ============================================================================
//                              Stack - 通道栈
// ============================================================================

// Stack 通道的内部调度栈
//
// 持有解析器与通道工厂能力的长期引用；实现 interfaces.Watcher，
// 把地址更新转换为子通道的创建与淘汰（全量替换语义）。
//
// FinishInit 之前到达的更新被缓存，绑定完成后统一应用，
// 因此解析器可以在构造时就同步推送首批地址。
type Stack struct {
	ch *Channel

	mu          sync.Mutex
	initialized bool
	closed      bool
	factory     interfaces.ClientChannelFactory
	resolver    interfaces.Resolver
	subchannels map[string]interfaces.Subchannel
	pending     []types.Address
	hasPending  bool
	lastErr     error
}

var _ interfaces.Watcher = (*Stack)(nil)

func newStack(ch *Channel) *Stack {
	return &Stack{
		ch:          ch,
		subchannels: make(map[string]interfaces.Subchannel),
	}
}

// FinishInit 把解析器与工厂能力绑定进通道栈
//
// 通道栈取一个工厂能力引用（长期持有，关闭时释放）；
// 解析器引用自此由通道栈独占，构造方不再持有。
// 缓存的地址更新在同一临界区内应用，晚于缓存批次到达的
// 更新不会被缓存批次覆盖。
func (s *Stack) FinishInit(res interfaces.Resolver, f interfaces.ClientChannelFactory) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	f.Ref()
	s.factory = f
	s.resolver = res
	s.initialized = true

	var created, removed []interfaces.Subchannel
	if s.hasPending {
		created, removed = s.applyLocked(s.pending)
		s.pending = nil
		s.hasPending = false
	}
	s.mu.Unlock()

	s.settle(created, removed)
	logger.Debug("通道栈绑定完成", "id", s.ch.id)
	return nil
}

// OnAddresses 接收解析器推送的地址更新（全量替换）
func (s *Stack) OnAddresses(addrs []types.Address) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if !s.initialized {
		// 绑定完成前缓存最新一批
		s.pending = addrs
		s.hasPending = true
		s.mu.Unlock()
		return
	}
	s.lastErr = nil
	created, removed := s.applyLocked(addrs)
	s.mu.Unlock()

	s.settle(created, removed)
	logger.Debug("地址更新已应用", "id", s.ch.id, "addresses", len(addrs), "created", len(created), "removed", len(removed))
}

// applyLocked 在持锁状态下对地址集做全量替换差分
//
// 同一批次内重复的地址只保留首个，保证每个地址至多对应
// 一个受管子通道。返回待启动与待淘汰的子通道。
func (s *Stack) applyLocked(addrs []types.Address) (created, removed []interfaces.Subchannel) {
	next := make(map[string]interfaces.Subchannel, len(addrs))
	for _, addr := range addrs {
		if _, ok := next[addr.Addr]; ok {
			continue
		}
		if sub, ok := s.subchannels[addr.Addr]; ok {
			next[addr.Addr] = sub
			delete(s.subchannels, addr.Addr)
			continue
		}
		sub := s.factory.CreateSubchannel(interfaces.SubchannelArgs{
			Address:    addr,
			ServerName: s.serverNameFor(addr),
			Args:       s.ch.args,
		})
		next[addr.Addr] = sub
		created = append(created, sub)
	}

	// 不在新地址集中的子通道淘汰
	removed = make([]interfaces.Subchannel, 0, len(s.subchannels))
	for _, sub := range s.subchannels {
		removed = append(removed, sub)
	}
	s.subchannels = next
	return created, removed
}

// settle 执行差分结果：淘汰旧子通道，启动新子通道
func (s *Stack) settle(created, removed []interfaces.Subchannel) {
	for _, sub := range removed {
		sub.Close()
	}
	for _, sub := range created {
		sub.Connect(context.Background())
	}
}

// OnError 接收解析失败通知
func (s *Stack) OnError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.lastErr = err
	logger.Warn("解析失败", "id", s.ch.id, "error", err)
}

// serverNameFor 决定子通道的安全握手服务器名
//
// 优先使用地址自带的服务器名，其次回落到合并参数中的 SNI 项。
func (s *Stack) serverNameFor(addr types.Address) string {
	if addr.ServerName != "" {
		return addr.ServerName
	}
	if v, ok := s.ch.args.Get(channelargs.KeySNIHost); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// hasReady 返回是否存在就绪的子通道
func (s *Stack) hasReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subchannels {
		if sub.State() == types.StateReady {
			return true
		}
	}
	return false
}

// aggregateState 聚合子通道状态为通道状态
func (s *Stack) aggregateState() types.ConnectivityState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.StateShutdown
	}
	if len(s.subchannels) == 0 {
		if s.lastErr != nil {
			return types.StateTransientFailure
		}
		return types.StateIdle
	}

	allFailed := true
	for _, sub := range s.subchannels {
		switch sub.State() {
		case types.StateReady:
			return types.StateReady
		case types.StateTransientFailure:
		default:
			allFailed = false
		}
	}
	if allFailed {
		return types.StateTransientFailure
	}
	return types.StateConnecting
}

// shutdown 关闭通道栈：停止解析器、关闭子通道、释放工厂引用
func (s *Stack) shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	res := s.resolver
	f := s.factory
	subs := make([]interfaces.Subchannel, 0, len(s.subchannels))
	for _, sub := range s.subchannels {
		subs = append(subs, sub)
	}
	s.subchannels = nil
	s.resolver = nil
	s.factory = nil
	s.mu.Unlock()

	var err error
	if res != nil {
		err = multierr.Append(err, res.Close())
	}
	for _, sub := range subs {
		err = multierr.Append(err, sub.Close())
	}
	if f != nil {
		f.Unref()
	}
	return err
}
