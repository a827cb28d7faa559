package metrics

import "sync/atomic"

// ============================================================================
//                              Stats - 构造统计快照
// ============================================================================

// Stats 通道构造统计快照
//
// Stats 表示某个时间点的构造结果分布。
type Stats struct {
	LiveChannels    int64 // 成功构造的活通道数
	LameChannels    int64 // 以残废通道收场的构造数
	ResolverFailed  int64 // 解析器创建失败（返回 nil 通道）数
	SubchannelsMade int64 // 创建的子通道总数
}

// Total 返回构造尝试总数
func (s Stats) Total() int64 {
	return s.LiveChannels + s.LameChannels + s.ResolverFailed
}

// ============================================================================
//                              Reporter - 计数器
// ============================================================================

// Reporter 构造结果计数器
//
// 零值可用；并发安全。
type Reporter struct {
	live       atomic.Int64
	lame       atomic.Int64
	resolver   atomic.Int64
	subchannel atomic.Int64
}

// NewReporter 创建计数器
func NewReporter() *Reporter {
	return &Reporter{}
}

// RecordLive 记录一次活通道构造
func (r *Reporter) RecordLive() {
	r.live.Add(1)
}

// RecordLame 记录一次残废通道构造
func (r *Reporter) RecordLame() {
	r.lame.Add(1)
}

// RecordResolverFailure 记录一次解析器创建失败
func (r *Reporter) RecordResolverFailure() {
	r.resolver.Add(1)
}

// RecordSubchannel 记录一次子通道创建
func (r *Reporter) RecordSubchannel() {
	r.subchannel.Add(1)
}

// Snapshot 返回当前统计快照
func (r *Reporter) Snapshot() Stats {
	return Stats{
		LiveChannels:    r.live.Load(),
		LameChannels:    r.lame.Load(),
		ResolverFailed:  r.resolver.Load(),
		SubchannelsMade: r.subchannel.Load(),
	}
}
