// Package apperr 定义业务层统一的错误分类，handler 根据分类决定 HTTP 状态码。
package apperr

import (
	"context"
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation 参数不合法，调用方需要修改请求
	KindValidation
	// KindNotFound 资源不存在或已停用
	KindNotFound
	// KindSelfReference 对自己点赞或关注
	KindSelfReference
	// KindConflict 唯一键冲突，例如重复注册
	KindConflict
	// KindUnauthorized 凭证无效
	KindUnauthorized
	// KindStore 存储层故障，不向调用方暴露细节
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindSelfReference:
		return "self_reference"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func SelfReference(msg string) error {
	return &Error{Kind: KindSelfReference, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Store 包装存储层错误；已经分类过的错误原样返回
func Store(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	msg := "store unavailable"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "store timeout"
	}
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

// KindOf 返回错误分类，未分类的错误返回 KindUnknown
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message 返回可以展示给调用方的信息
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "internal server error"
}
