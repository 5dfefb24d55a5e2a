package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"contact-form/internal/core/config"
	"contact-form/internal/core/database"
	"contact-form/internal/core/logger"
	"contact-form/internal/core/server"
	"contact-form/internal/feature/contact"
	"contact-form/internal/repo"
	"contact-form/internal/service"
	"contact-form/internal/transport/http/handler"
	"contact-form/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 数据库：按 APP_ENV 选择配置，启动时创建，退出时关闭
	db := mustOpenDB(cfg, log)
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("db close", zap.Error(err))
		}
	}()

	// 访问日志（追加写 + 切割）
	access := logger.NewRotator(logger.FileRotate{
		Filename:   cfg.Log.Access.Filename,
		MaxSizeMB:  cfg.Log.Access.MaxSizeMB,
		MaxBackups: cfg.Log.Access.MaxBackups,
		MaxAgeDays: cfg.Log.Access.MaxAgeDays,
		Compress:   cfg.Log.Access.Compress,
	})
	defer access.Close()

	contacts := handler.NewContactHandler(
		service.NewContactService(repo.NewContactRepo(db)),
		log,
	)
	lim := cfg.App.Limits
	r := router.NewWebEngine(log, router.Options{
		RateLimitRPS:   lim.RateLimitRPS,
		RateLimitBurst: lim.RateLimitBurst,
		MaxConcurrent:  lim.MaxConcurrent,
		MaxBodyBytes:   lim.MaxBodyBytes,
		RequestTimeout: time.Duration(lim.RequestTimeoutSec) * time.Second,
		AccessLog:      access,
	}, contacts)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("contact form starting",
		zap.String("env", cfg.App.Env),
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("contacts", baseURL+"/contacts"),
		zap.String("access_log", cfg.Log.Access.Filename),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("contact form start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("contact form stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	f := cfg.Log.File
	if f.Filename == "" {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, f.Filename, f.MaxSizeMB, f.MaxBackups, f.MaxAgeDays, f.Compress)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	dbc, err := cfg.Database()
	if err != nil {
		l.Fatal("db config", zap.Error(err))
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             dbc.Driver,
		DSN:                dbc.DSN,
		Username:           dbc.Username,
		Password:           dbc.Password,
		MaxOpenConns:       dbc.MaxOpenConns,
		MaxIdleConns:       dbc.MaxIdleConns,
		ConnMaxLifetimeMin: dbc.ConnMaxLifetimeMin,
		LogLevel:           dbc.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected",
		zap.String("driver", dbc.Driver),
		zap.String("dsn", database.MaskDSN(dbc.DSN)),
	)

	// 表结构默认由外部管理；仅开发环境打开
	if dbc.AutoMigrate {
		if err := db.AutoMigrate(&contact.ContactModel{}); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	return db
}
