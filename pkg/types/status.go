package types

import "fmt"

// ============================================================================
//                              Code - 状态码
// ============================================================================

// Code 通道操作的状态码
//
// 取值与 RPC 生态的通用状态码对齐，便于跨系统映射。
type Code int

const (
	// CodeOK 操作成功
	CodeOK Code = 0
	// CodeInvalidArgument 调用方提供了非法参数
	CodeInvalidArgument Code = 3
	// CodeUnimplemented 操作未实现
	CodeUnimplemented Code = 12
	// CodeInternal 内部错误（构造期失败统一使用此码）
	CodeInternal Code = 13
	// CodeUnavailable 服务当前不可用
	CodeUnavailable Code = 14
)

// String 返回状态码的字符串表示
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeUnimplemented:
		return "Unimplemented"
	case CodeInternal:
		return "Internal"
	case CodeUnavailable:
		return "Unavailable"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// ============================================================================
//                              Status - 状态
// ============================================================================

// Status 携带状态码和描述信息的操作结果
//
// Status 是不可变值类型。零值等价于 OK。
type Status struct {
	Code    Code
	Message string
}

// NewStatus 创建状态
func NewStatus(code Code, message string) Status {
	return Status{Code: code, Message: message}
}

// OK 返回状态是否为成功
func (s Status) OK() bool {
	return s.Code == CodeOK
}

// Err 返回状态对应的错误
//
// OK 状态返回 nil。
func (s Status) Err() error {
	if s.OK() {
		return nil
	}
	return &StatusError{status: s}
}

// String 返回状态的字符串表示
func (s Status) String() string {
	if s.Message == "" {
		return s.Code.String()
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

// ============================================================================
//                              StatusError - 状态错误
// ============================================================================

// StatusError 将 Status 作为 error 传递
type StatusError struct {
	status Status
}

// Error 实现 error 接口
func (e *StatusError) Error() string {
	return e.status.String()
}

// Status 返回底层状态
func (e *StatusError) Status() Status {
	return e.status
}

// StatusFromError 从错误中提取状态
//
// 非 StatusError 的错误统一映射为 CodeInternal。
// nil 错误返回 OK 状态。
func StatusFromError(err error) Status {
	if err == nil {
		return Status{Code: CodeOK}
	}
	if se, ok := err.(*StatusError); ok {
		return se.Status()
	}
	return Status{Code: CodeInternal, Message: err.Error()}
}
