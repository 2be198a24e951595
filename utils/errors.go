package utils

import "net/http"

// Kind 错误类别，每个类别对应唯一的HTTP状态码
type Kind int

const (
	KindStorage Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindDuplicate
)

// Status 返回错误类别对应的HTTP状态码
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	default:
		return "storage"
	}
}

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 请求参数错误 (400)
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound 记录不存在 (404)
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized 认证失败 (401)
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Duplicate 唯一约束冲突 (409)
func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// Storage 数据库错误 (500)，原始错误信息放在 detail 中
func Storage(message string, err error) *Error {
	e := &Error{Kind: KindStorage, Message: message, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// Wrap 用指定类别包装底层错误，底层错误信息作为 detail
func Wrap(kind Kind, message string, err error) *Error {
	e := Storage(message, err)
	e.Kind = kind
	return e
}

