package middleware

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ISO-8601, UTC, millisecond precision: 2006-01-02T15:04:05.000Z
const accessTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// AccessLog 每个请求向 w 追加一行 "<time> - <METHOD> <path>"。
// 写失败只记到运行日志，不影响请求本身。
func AccessLog(w io.Writer, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		line := time.Now().UTC().Format(accessTimeLayout) + " - " +
			c.Request.Method + " " + c.Request.URL.Path + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			l.Warn("access log write failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.Next()
	}
}
