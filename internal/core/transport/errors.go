package transport

import "errors"

var (
	// ErrDialFailed 底层连接建立失败
	ErrDialFailed = errors.New("transport: dial failed")

	// ErrHandshakeFailed 握手链执行失败
	ErrHandshakeFailed = errors.New("transport: handshake failed")
)
