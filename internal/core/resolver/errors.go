package resolver

import "errors"

var (
	// ErrUnknownScheme 目标 scheme 没有注册对应的解析器
	ErrUnknownScheme = errors.New("resolver: no resolver registered for scheme")

	// ErrEmptyEndpoint 目标缺少可解析的 endpoint
	ErrEmptyEndpoint = errors.New("resolver: empty endpoint in target")

	// ErrNilWatcher 未提供地址观察者
	ErrNilWatcher = errors.New("resolver: nil watcher")
)
