package validation

import (
	"reflect"
	"strings"

	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// 错误信息中使用请求里的字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form", "header"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	_ = v.RegisterValidation("bearer", func(fl validator.FieldLevel) bool {
		_, err := authsdk.ExtractBearerToken(fl.Field().String())
		return err == nil
	})
}
