// Package metrics 提供通道构造的计量
//
// 记录构造结果的分布（活通道 / 残废通道 / 解析器失败），
// 供诊断与测试观测。计数全部基于原子操作，无锁读写。
package metrics
