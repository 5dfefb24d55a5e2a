package router

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"contact-form/internal/core/server"
	mdw "contact-form/internal/transport/http/middleware"
	"contact-form/web"
)

type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	AccessLog      io.Writer // 访问日志文件；为空则丢弃
}

func (o Options) withDefaults() Options {
	if o.RateLimitRPS <= 0 {
		o.RateLimitRPS = 200
	}
	if o.RateLimitBurst <= 0 {
		o.RateLimitBurst = 400
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 300
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.AccessLog == nil {
		o.AccessLog = io.Discard
	}
	return o
}

func NewWebEngine(l *zap.Logger, o Options, mods ...Module) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(l, mdw.AccessLog(o.AccessLog, l))
	r.SetHTMLTemplate(web.Templates())

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.RateLimitRPS), o.RateLimitBurst),
		mdw.ConcurrencyLimit(o.MaxConcurrent),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	MountAll(r, mods...)
	return r
}
