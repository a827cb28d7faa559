package channelargs

import "errors"

var (
	// ErrConflictingSecurityState 调用方参数中已存在安全连接器项
	ErrConflictingSecurityState = errors.New("channelargs: security connector already present in args")

	// ErrDuplicateEntry 合并结果中出现重复的安全连接器项（防御性，正常不可达）
	ErrDuplicateEntry = errors.New("channelargs: duplicate security connector entry after merge")

	// ErrNilConnector 合并时未提供安全连接器
	ErrNilConnector = errors.New("channelargs: nil security connector")
)
