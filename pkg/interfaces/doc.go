// Package interfaces 定义 go-rpcchannel 的公共接口
//
// 本包采用扁平命名组织接口定义，每个文件对应一个协作方契约：
//
//   - credentials.go - Credentials 凭证（安全连接器的来源）
//   - security.go    - SecurityConnector / Handshaker 安全连接器与握手链
//   - resolver.go    - Resolver / Builder / Watcher 名称解析
//   - connector.go   - Connector / ConnectorFactory 传输连接器
//   - factory.go     - ClientChannelFactory / Subchannel 通道工厂能力
//   - channel.go     - Channel 用户侧通道句柄
//
// 接口仅依赖 pkg/types，不依赖任何 internal 包。
// 传输层、解析算法与握手内部逻辑均在本模块之外实现，
// 这里只约定它们与通道构造路径之间的窄契约。
package interfaces
