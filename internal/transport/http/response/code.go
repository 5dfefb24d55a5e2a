package response

// 错误码直接基于 HTTP 语义，与响应状态码一致
const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodePayloadTooLarge    = 413
	CodeTooManyRequests    = 429
	CodeServerError        = 500
	CodeServiceUnavailable = 503
	CodeTimeout            = 504
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:                 "OK",
	CodeBadRequest:         "Bad Request",
	CodePayloadTooLarge:    "Payload Too Large",
	CodeTooManyRequests:    "Too Many Requests",
	CodeServerError:        "Internal Server Error",
	CodeServiceUnavailable: "Service Unavailable",
	CodeTimeout:            "Gateway Timeout",
}

// Status 把业务码映射为 HTTP 状态码
func Status(code int) int {
	if code == CodeOK {
		return 200
	}
	return code
}
