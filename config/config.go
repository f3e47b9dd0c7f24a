package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App       `json:"app" yaml:"app"`
	Server   *Server    `json:"server" yaml:"server"`
	Database *Database  `json:"database" yaml:"database"`
	Redis    *Redis     `json:"redis" yaml:"redis"`
	Jwt      *Jwt       `json:"jwt" yaml:"jwt"`
	Oss      *OssConfig `json:"oss" yaml:"oss"`
	Feed     *Feed      `json:"feed" yaml:"feed"`
}

type Server struct {
	Http           int           `json:"http" yaml:"http"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	CorsOrigins    []string      `json:"cors_origins" yaml:"cors_origins"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) setDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.NodeID == 0 {
		c.App.NodeID = 1
	}
	if c.App.PasswordCost == 0 {
		c.App.PasswordCost = 12
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 10 * time.Second
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.AccessExpire == 0 {
		c.Jwt.AccessExpire = 15 * time.Minute
	}
	if c.Jwt.RefreshExpire == 0 {
		c.Jwt.RefreshExpire = 7 * 24 * time.Hour
	}
	if c.Jwt.RefreshRotateBuffer == 0 {
		c.Jwt.RefreshRotateBuffer = 24 * time.Hour
	}
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.Oss.MaxImageSize == 0 {
		c.Oss.MaxImageSize = 5 << 20
	}
	if c.Oss.PresignExpire == 0 {
		c.Oss.PresignExpire = 5 * time.Minute
	}
	if c.Feed == nil {
		c.Feed = &Feed{}
	}
	c.Feed.setDefaults()
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Feed.DefaultLimit > c.Feed.MaxLimit {
		return fmt.Errorf("feed.default_limit %d exceeds feed.max_limit %d", c.Feed.DefaultLimit, c.Feed.MaxLimit)
	}
	return nil
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
