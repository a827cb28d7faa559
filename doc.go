// Package rpcchannel 提供安全 RPC 通道的构造入口
//
// 通道构造把四类能力装配到一起：
//   - 安全凭证（TLS 或明文）派生出安全连接器
//   - 配置合并器把连接器写入通道参数
//   - 通道工厂能力负责子通道与通道的创建
//   - 解析器把目标字符串转换为可连接的地址
//
// 构造永不对调用方抛出同步错误：任何构造期失败都返回一个
// 携带固定失败状态的残废通道，把错误面推迟到首次调用。
// 唯一的例外是解析器创建失败，此时返回 nil。
//
// 基本用法：
//
//	b, err := rpcchannel.New()
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//
//	ch := b.CreateSecureChannel(
//		rpcchannel.NewTLSCredentials(nil),
//		"dns:///example.com:443",
//		types.NewArgs(),
//	)
//	if ch == nil {
//		return errors.New("resolver unavailable")
//	}
//	defer ch.Close()
package rpcchannel
