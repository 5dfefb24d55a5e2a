package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const DefaultEnv = "development"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// Limits 对应 router 里的保护型中间件
type Limits struct {
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxConcurrent     int64
	MaxBodyBytes      int64
	RequestTimeoutSec int
}

type App struct {
	Name   string
	Env    string
	HTTP   HTTP
	Limits Limits
}

type File struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	File   File // 运行日志文件（可选，Filename 为空则只写 stdout）
	Access File // 访问日志文件（每个请求一行）
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App       App
	Log       Log
	Databases map[string]DB `mapstructure:"databases"`
}

// Database 按 App.Env 选择数据库配置
func (c *Config) Database() (DB, error) {
	env := c.App.Env
	if env == "" {
		env = DefaultEnv
	}
	db, ok := c.Databases[strings.ToLower(env)]
	if !ok {
		return DB{}, fmt.Errorf("no database configured for env %q", env)
	}
	return db, nil
}

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

func Read(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// APP_ENV 优先于配置文件
	if env := os.Getenv("APP_ENV"); env != "" {
		c.App.Env = env
	}
	if c.App.Env == "" {
		c.App.Env = DefaultEnv
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "contact-form")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.limits.ratelimitrps", 200)
	v.SetDefault("app.limits.ratelimitburst", 400)
	v.SetDefault("app.limits.maxconcurrent", 300)
	v.SetDefault("app.limits.maxbodybytes", 1<<20)
	v.SetDefault("app.limits.requesttimeoutsec", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.access.filename", "logs/access.log")
	v.SetDefault("log.access.maxsizemb", 100)
}
