package rpcchannel

import "errors"

var (
	// ErrBuilderClosed 构造器已关闭
	ErrBuilderClosed = errors.New("rpcchannel: builder is closed")

	// ErrNilResolverBuilder 提供了 nil 解析器构造器
	ErrNilResolverBuilder = errors.New("rpcchannel: nil resolver builder")

	// ErrNilConnectorFactory 提供了 nil 连接器工厂
	ErrNilConnectorFactory = errors.New("rpcchannel: nil connector factory")

	// ErrInvalidDuration 提供了非正的时长配置
	ErrInvalidDuration = errors.New("rpcchannel: duration must be positive")
)
