// Package types 定义 go-rpcchannel 的公共数据结构
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各组件间传递数据：
//
//   - status.go  - Status/Code 状态码（通道级错误的统一载体）
//   - target.go  - Target 目标地址解析（scheme://authority/endpoint）
//   - args.go    - Args 有序不可变键值参数集（通道配置）
//   - address.go - Address 解析器产出的地址单元
//   - enums.go   - ConnectivityState / ChannelKind 枚举
package types
