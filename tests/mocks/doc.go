// Package mocks 提供统一的测试 Mock 实现
//
// 本包提供标准化的测试双（Test Doubles），供各包测试复用：
//
//   - MockCredentials / MockSecurityConnector - 凭证与安全连接器，
//     带引用计数观测（验证构造路径的引用收支平衡）
//   - MockResolverBuilder / MockResolver      - 解析器，支持注入失败
//     与手动推送地址更新
//   - MockConnectorFactory / MockConnector    - 传输连接器
//   - MockChannelFactory / MockSubchannel     - 通道工厂能力与子通道
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
// 3. 简化实现: 仅提供测试所需的核心功能
package mocks
