// Package security 实现安全连接器的生命周期
//
// 安全连接器由凭证与目标派生，持有经过校验的安全材料：
//
//   - 创建：仅做凭证/目标配对的策略校验与材料派生，不做网络 IO
//   - 生命周期：引用计数管理；构造后不可变，计数归零释放材料
//   - 握手：连接器把自己的握手步骤安装到传输连接器的握手链上
//
// 提供两种凭证实现：
//   - TLSCredentials      - 基于标准库 crypto/tls 的安全凭证
//   - InsecureCredentials - 明文凭证（不安装任何握手步骤）
package security
