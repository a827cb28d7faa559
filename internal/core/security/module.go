package security

import (
	"crypto/tls"
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// ============================================================================
//                              配置
// ============================================================================

// Config 安全模块配置
type Config struct {
	// Protocol 凭证协议："tls"（默认）或 "insecure"
	Protocol string

	// TLS 自定义 TLS 配置（仅 Protocol 为 "tls" 时生效，可为 nil）
	TLS *tls.Config

	// ServerNameOverride 覆盖由目标派生的服务器名（测试用）
	ServerNameOverride string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{Protocol: "tls"}
}

// ============================================================================
//                              Fx 模块
// ============================================================================

// Module 安全模块
var Module = fx.Module("core_security",
	fx.Provide(ProvideCredentials),
)

// Params 模块输入依赖
type Params struct {
	fx.In

	Config *Config `optional:"true"`
}

// Result 模块输出服务
type Result struct {
	fx.Out

	Credentials interfaces.Credentials
}

// ProvideCredentials 根据配置提供凭证实现
func ProvideCredentials(p Params) (Result, error) {
	cfg := DefaultConfig()
	if p.Config != nil {
		cfg = *p.Config
	}

	switch cfg.Protocol {
	case "tls", "":
		creds := NewTLSCredentialsWithServerName(cfg.TLS, cfg.ServerNameOverride)
		return Result{Credentials: creds}, nil
	case "insecure":
		logger.Warn("使用明文凭证，连接不加密")
		return Result{Credentials: NewInsecureCredentials()}, nil
	default:
		return Result{}, fmt.Errorf("unknown security protocol %q", cfg.Protocol)
	}
}
