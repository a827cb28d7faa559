package types

// ============================================================================
//                              Address - 解析地址
// ============================================================================

// Address 解析器产出的单个地址
//
// Addr 是可直接拨号的 "host:port" 形式；ServerName 是该地址
// 对应的服务器名（用于安全握手时的名称校验，可为空）。
type Address struct {
	Addr       string
	ServerName string
}

// String 返回地址的字符串表示
func (a Address) String() string {
	return a.Addr
}
