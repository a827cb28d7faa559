// Package channelargs 实现通道参数的合并
//
// 通道构造时需要把三类参数合并为一个不可变集：
//
//  1. 连接器派生参数（优先级最低，如派生的 SNI 主机名）
//  2. 调用方参数（覆盖派生参数）
//  3. 安全连接器回指项（最后追加，且必须唯一）
//
// 调用方参数中预先存在安全连接器项属于构造错误，
// 必须在创建连接器之前检查（避免白白构造连接器）。
package channelargs
