package models

import "time"

// ProfileLike 用户对资料的点赞，取消即物理删除
type ProfileLike struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_user_profile,priority:1" json:"user_id,string"`
	ProfileID int64     `gorm:"column:profile_id;not null;uniqueIndex:uk_user_profile,priority:2;index" json:"profile_id,string"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (ProfileLike) TableName() string {
	return "profile_likes"
}

// UserFollow 有向关注关系
type UserFollow struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FollowerID  int64     `gorm:"column:follower_id;not null;uniqueIndex:uk_follower_following,priority:1" json:"follower_id,string"` // 关注人
	FollowingID int64     `gorm:"column:following_id;not null;uniqueIndex:uk_follower_following,priority:2;index" json:"following_id,string"` // 被关注人
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}
