package types

import "time"

// Viewer 当前请求的身份，nil 表示匿名
type Viewer struct {
	UserID int64
}

type ProfileView struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"userId,string"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Headline  string    `json:"headline"`
	Interests []string  `json:"interests"`
	PhotoURL  string    `json:"photoUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnnotatedProfile 附带统计和当前用户视角标记的资料
type AnnotatedProfile struct {
	ProfileView
	LikesCount     int64 `json:"likesCount"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
	IsLiked        bool  `json:"isLiked"`
	IsFollowing    bool  `json:"isFollowing"`
}

type ProfileResponse struct {
	Profile *AnnotatedProfile `json:"profile"`
}

// CreateProfileInput 注册时同时创建用户与资料
type CreateProfileInput struct {
	Email        string   `binding:"required,email,max=255"`
	PasswordHash string   `binding:"required"`
	Name         string   `binding:"required,min=2,max=50"`
	Bio          string   `binding:"max=500"`
	Headline     string   `binding:"max=100"`
	Interests    []string `binding:"max=10,dive,max=30"`
	PhotoURL     string   `binding:"max=1024"`
}

// UpdateProfileRequest nil 字段保持不变
type UpdateProfileRequest struct {
	Name      *string  `json:"name" binding:"omitnil,min=2,max=50"`
	Bio       *string  `json:"bio" binding:"omitnil,max=500"`
	Headline  *string  `json:"headline" binding:"omitnil,max=100"`
	Interests []string `json:"interests" binding:"omitempty,max=10,dive,max=30"`
}

type UpdatePhotoRequest struct {
	PhotoURL string `json:"photoUrl" binding:"required,max=1024"`
	PhotoKey string `json:"photoKey" binding:"max=255"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
