package security

import "errors"

var (
	// ErrInvalidTarget 目标地址无法用于派生安全连接器
	ErrInvalidTarget = errors.New("security: invalid target for security connector")

	// ErrSchemeNotSecurable 目标 scheme 不支持安全传输
	ErrSchemeNotSecurable = errors.New("security: target scheme does not support secure transport")

	// ErrInvalidCredentials 凭证对该目标不可用
	ErrInvalidCredentials = errors.New("security: credentials invalid for target")

	// ErrConnectorReleased 连接器已释放后仍被使用
	ErrConnectorReleased = errors.New("security: connector used after release")
)
