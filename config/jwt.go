package config

import "time"

type Jwt struct {
	Secret        string        `json:"secret" yaml:"secret"`
	AccessExpire  time.Duration `json:"access_expire" yaml:"access_expire"`
	RefreshExpire time.Duration `json:"refresh_expire" yaml:"refresh_expire"`
	// refresh token 剩余有效期低于该值时轮换
	RefreshRotateBuffer time.Duration `json:"refresh_rotate_buffer" yaml:"refresh_rotate_buffer"`
}
