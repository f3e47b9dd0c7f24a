package types

import "time"

type SignupRequest struct {
	Email     string   `json:"email" binding:"required,email,max=255"`
	Password  string   `json:"password" binding:"required,min=6,max=72"`
	Name      string   `json:"name" binding:"required,min=2,max=50"`
	Bio       string   `json:"bio" binding:"max=500"`
	Headline  string   `json:"headline" binding:"max=100"`
	Interests []string `json:"interests" binding:"max=10,dive,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // 秒
}

type UserView struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User    UserView          `json:"user"`
	Profile *AnnotatedProfile `json:"profile"`
	Tokens  TokenResponse     `json:"tokens"`
}

type MeResponse struct {
	User    UserView          `json:"user"`
	Profile *AnnotatedProfile `json:"profile"`
}
