// Package transport 实现传输连接器
//
// 连接器封装一次连接尝试的完整过程：
//
//  1. 建立底层 TCP 连接
//  2. 依次执行握手链上的握手步骤（如 TLS）
//
// 连接器与握手链的构造是纯对象组装，不做任何 IO；
// 实际建连发生在子通道发起连接尝试时。
package transport
