package factory

import "errors"

var (
	// ErrNilSecurityConnector 未提供安全连接器
	ErrNilSecurityConnector = errors.New("factory: nil security connector")

	// ErrResolverCreation 解析器创建失败（通道构造中唯一返回 nil 通道的失败）
	ErrResolverCreation = errors.New("factory: resolver creation failed")

	// ErrFactoryReleased 工厂能力已释放后仍被使用
	ErrFactoryReleased = errors.New("factory: factory used after release")
)
