package response

import (
	"errors"
	"net/http"
)

// 业务错误码
const (
	// 失败（未识别的错误）
	Fail ResponseCode = iota
	// 参数解析错误
	ParseError
	// 参数校验错误
	InvalidParameter
	// 未认证
	Unauthorized
	// 无权限
	Forbidden
	// 资源不存在
	NotFound
	// 唯一字段冲突
	Conflict
)

type codeInfo struct {
	kind   string
	code   string
	status int
}

var codeTable = map[ResponseCode]codeInfo{
	Fail:             {kind: "InternalServerError", code: "INTERNAL", status: http.StatusInternalServerError},
	ParseError:       {kind: "BadRequest", code: "BAD_REQUEST", status: http.StatusBadRequest},
	InvalidParameter: {kind: "UnprocessableEntity", code: "UNPROCESSABLE_ENTITY", status: http.StatusUnprocessableEntity},
	Unauthorized:     {kind: "Unauthorized", code: "UNAUTHORIZED", status: http.StatusUnauthorized},
	Forbidden:        {kind: "Forbidden", code: "FORBIDDEN", status: http.StatusForbidden},
	NotFound:         {kind: "NotFound", code: "NOT_FOUND", status: http.StatusNotFound},
	Conflict:         {kind: "Conflict", code: "CONFLICT", status: http.StatusConflict},
}

func (c ResponseCode) info() codeInfo {
	if info, ok := codeTable[c]; ok {
		return info
	}
	return codeTable[Fail]
}

// Kind 错误类别名，如 "Conflict"
func (c ResponseCode) Kind() string { return c.info().kind }

// String 机器可读错误码，如 "CONFLICT"
func (c ResponseCode) String() string { return c.info().code }

// HTTPStatus 对应的 HTTP 状态码
func (c ResponseCode) HTTPStatus() int { return c.info().status }

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Code.Kind() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Code.Kind() + ": " + e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// NewError 等价于 NewBusinessError(WithErrorCode(code), WithErrorMessage(msg), opts...)
func NewError(code ResponseCode, msg string, opts ...ErrorOption) *BusinessError {
	return NewBusinessError(append([]ErrorOption{WithErrorCode(code), WithErrorMessage(msg)}, opts...)...)
}

// Internal 包装基础设施错误，消息不会返回给客户端
func Internal(err error) *BusinessError {
	return NewBusinessError(
		WithErrorCode(Fail),
		WithErrorMessage("something went wrong"),
		WithError(err),
	)
}

// AsBusinessError 从错误链中取出 BusinessError，取不到时视为内部错误
func AsBusinessError(err error) *BusinessError {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return be
	}
	return Internal(err)
}
