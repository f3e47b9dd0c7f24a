package config

import "time"

type Feed struct {
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`
	MaxLimit     int `json:"max_limit" yaml:"max_limit"`
	TrendingSize int `json:"trending_size" yaml:"trending_size"`
	// 热门兴趣缓存时间，只在配置了 redis 时生效
	TrendingTTL time.Duration `json:"trending_ttl" yaml:"trending_ttl"`
}

func (f *Feed) setDefaults() {
	if f.DefaultLimit == 0 {
		f.DefaultLimit = 20
	}
	if f.MaxLimit == 0 {
		f.MaxLimit = 50
	}
	if f.TrendingSize == 0 {
		f.TrendingSize = 20
	}
	if f.TrendingTTL == 0 {
		f.TrendingTTL = time.Minute
	}
}
