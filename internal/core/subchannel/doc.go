// Package subchannel 实现子通道：单个连接尝试单元
//
// 子通道由通道工厂能力按地址构造，持有组装好的传输连接器
// （含安全握手链）。构造本身是纯对象组装，永不失败；
// 建连失败在异步的连接尝试中通过连接状态暴露。
package subchannel
