package response

import "github.com/gin-gonic/gin"

// Reply 默认回纯文本 msg；客户端声明 Accept: application/json 时回统一 JSON 包。
// HTTP 状态码取自 r.Code
func Reply(c *gin.Context, r Resp) {
	status := Status(r.Code)
	if c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(status, r)
		return
	}
	c.String(status, r.Msg)
}

// AbortWith 终止后续 handler 并按 Reply 规则回包（供中间件使用）
func AbortWith(c *gin.Context, r Resp) {
	c.Abort()
	Reply(c, r)
}
