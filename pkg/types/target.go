package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              Target - 目标地址
// ============================================================================

// DefaultScheme 未指定 scheme 时使用的默认解析方案
const DefaultScheme = "dns"

// Target 通道的目标地址
//
// 文本形式为 "scheme://authority/endpoint"，例如：
//
//	dns:///example.com:443
//	passthrough:///127.0.0.1:8443
//
// 省略 scheme 的裸地址（"example.com:443"）按 DefaultScheme 处理。
type Target struct {
	// Scheme 解析方案（决定使用哪个 Resolver）
	Scheme string

	// Authority 解析权威（通常为空，保留给自定义解析器）
	Authority string

	// Endpoint 待解析的目标名称
	Endpoint string
}

// String 返回目标的规范文本形式
func (t Target) String() string {
	return fmt.Sprintf("%s://%s/%s", t.Scheme, t.Authority, t.Endpoint)
}

// ParseTarget 解析目标地址文本
//
// 不做任何网络操作，仅做文法拆分。空目标返回错误。
func ParseTarget(target string) (Target, error) {
	if target == "" {
		return Target{}, fmt.Errorf("types: empty target")
	}

	scheme, rest, found := strings.Cut(target, "://")
	if !found {
		// 裸地址，按默认方案处理
		return Target{Scheme: DefaultScheme, Endpoint: target}, nil
	}
	if scheme == "" {
		return Target{}, fmt.Errorf("types: empty scheme in target %q", target)
	}

	authority, endpoint, found := strings.Cut(rest, "/")
	if !found {
		// "scheme://endpoint" 形式，无 authority 分段
		return Target{Scheme: scheme, Endpoint: rest}, nil
	}
	return Target{Scheme: scheme, Authority: authority, Endpoint: endpoint}, nil
}
