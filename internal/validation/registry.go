package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"terminal-terrace/conduit/internal/dto"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Target 规则作用的请求部分
type Target int

const (
	TargetHeader Target = iota
	TargetParams
	TargetQuery
	TargetBody
)

func (t Target) String() string {
	switch t {
	case TargetHeader:
		return "headers"
	case TargetParams:
		return "params"
	case TargetQuery:
		return "query"
	default:
		return "body"
	}
}

// Rule 一条命名校验规则：作用目标、schema（返回新的请求结构体指针）、失败时的错误类别
type Rule struct {
	Target Target
	Schema func() any
	Kind   response.ResponseCode
}

// selfValidator 跨字段校验，在 tag 校验通过后调用
type selfValidator interface {
	Validate() error
}

var registry = map[string]Rule{}

// Register 注册规则，重复注册会 panic
func Register(name string, rule Rule) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("validation: rule %q registered twice", name))
	}
	if rule.Schema == nil {
		panic(fmt.Sprintf("validation: rule %q has no schema", name))
	}
	registry[name] = rule
}

// Lookup 按名称查找规则
func Lookup(name string) (Rule, bool) {
	rule, ok := registry[name]
	return rule, ok
}

func contextKey(name string) string {
	return "validation." + name
}

// Validate 按顺序执行命名规则，第一条失败即中止。
// 规则名在注册路由时解析，未知名称直接 panic。
func Validate(names ...string) gin.HandlerFunc {
	type resolved struct {
		name string
		rule Rule
	}
	rules := make([]resolved, 0, len(names))
	for _, name := range names {
		rule, ok := Lookup(name)
		if !ok {
			panic(fmt.Sprintf("validation: unknown rule %q", name))
		}
		rules = append(rules, resolved{name: name, rule: rule})
	}

	return func(c *gin.Context) {
		for _, r := range rules {
			value, err := bind(c, r.rule)
			if err != nil {
				dto.ErrorResponse(c, err)
				return
			}
			c.Set(contextKey(r.name), value)
		}
		c.Next()
	}
}

// Value 取出规则校验后的请求值，路由未声明该规则时返回 nil
func Value[T any](c *gin.Context, name string) *T {
	v, ok := c.Get(contextKey(name))
	if !ok {
		return nil
	}
	t, _ := v.(*T)
	return t
}

func bind(c *gin.Context, rule Rule) (any, *response.BusinessError) {
	obj := rule.Schema()

	var err error
	switch rule.Target {
	case TargetHeader:
		err = c.ShouldBindHeader(obj)
	case TargetParams:
		err = c.ShouldBindUri(obj)
	case TargetQuery:
		err = c.ShouldBindQuery(obj)
	case TargetBody:
		err = bindBody(c, obj)
	}
	if err != nil {
		return nil, toBusinessError(err, rule)
	}

	if sv, ok := obj.(selfValidator); ok {
		if err := sv.Validate(); err != nil {
			return nil, response.NewError(rule.Kind, err.Error())
		}
	}
	return obj, nil
}

// bindBody 读取并还原 body；空 body 按零值校验，以返回 "xxx is required" 而不是解析错误
func bindBody(c *gin.Context, obj any) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return binding.Validator.ValidateStruct(obj)
	}
	return binding.JSON.BindBody(body, obj)
}

func toBusinessError(err error, rule Rule) *response.BusinessError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return response.NewError(rule.Kind, fieldMessage(verrs[0]), response.WithError(err))
	}
	if rule.Target == TargetBody {
		return response.NewError(response.ParseError, "request body must be a valid JSON object", response.WithError(err))
	}
	return response.NewError(rule.Kind, fmt.Sprintf("invalid %s", rule.Target), response.WithError(err))
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "bearer":
		return authsdk.ErrMalformedHeader.Error()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath 去掉顶层结构体名："RegisterRequest.user.email" -> "user.email"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
