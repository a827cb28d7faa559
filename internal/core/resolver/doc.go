// Package resolver 实现名称解析器的注册与构造
//
// 解析器按目标 scheme 选择：
//
//   - registry.go    - Registry：scheme → ResolverBuilder 注册表
//   - dns.go         - dns 解析器：周期性 DNS 解析，带缓存与去重
//   - passthrough.go - passthrough 解析器：原样交付 endpoint
//
// 解析器与通道一一绑定：构造即启动异步解析，地址更新推送给
// 观察者（通道栈）。构造路径只在绑定完成前短暂持有解析器引用，
// 之后由通道栈持有直至通道关闭。
package resolver
