package response

type ResponseCode int

// ErrorDetail 错误详情
type ErrorDetail struct {
	Kind    string `json:"kind" example:"Conflict"`
	Code    string `json:"code" example:"CONFLICT"`
	Message string `json:"message" example:"email already taken."`
}

// ErrorBody 统一错误响应格式
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorResponse 由业务错误构建响应体；内部错误只暴露通用消息
func ErrorResponse(err *BusinessError) ErrorBody {
	msg := err.Msg
	if err.Code.HTTPStatus() >= 500 {
		msg = "something went wrong"
	}
	return ErrorBody{
		Error: ErrorDetail{
			Kind:    err.Code.Kind(),
			Code:    err.Code.String(),
			Message: msg,
		},
	}
}
