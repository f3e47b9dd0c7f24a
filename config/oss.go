package config

import "time"

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	// 对外访问域名，例如 https://cdn.example.com
	PublicBaseURL string        `json:"public_base_url" yaml:"public_base_url"`
	MaxImageSize  int64         `json:"max_image_size" yaml:"max_image_size"`
	PresignExpire time.Duration `json:"presign_expire" yaml:"presign_expire"`
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
