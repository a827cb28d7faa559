package channel

import "errors"

var (
	// ErrChannelClosed 通道已关闭
	ErrChannelClosed = errors.New("channel: channel closed")

	// ErrAlreadyInitialized 通道栈重复绑定
	ErrAlreadyInitialized = errors.New("channel: stack already initialized")
)
