package rpcchannel

import (
	"crypto/tls"

	"github.com/dep2p/go-rpcchannel/internal/core/security"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
)

// NewTLSCredentials 创建 TLS 通道凭证
//
// config 为 nil 时使用系统根证书与默认配置。
func NewTLSCredentials(config *tls.Config) interfaces.Credentials {
	return security.NewTLSCredentials(config)
}

// NewTLSCredentialsWithServerName 创建覆盖服务器名的 TLS 通道凭证
//
// serverNameOverride 替代由目标派生的握手服务器名，主要用于测试。
func NewTLSCredentialsWithServerName(config *tls.Config, serverNameOverride string) interfaces.Credentials {
	return security.NewTLSCredentialsWithServerName(config, serverNameOverride)
}

// NewInsecureCredentials 创建明文通道凭证
func NewInsecureCredentials() interfaces.Credentials {
	return security.NewInsecureCredentials()
}
