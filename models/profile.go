package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProfileNameMin      = 2
	ProfileNameMax      = 50
	ProfileBioMax       = 500
	ProfileHeadlineMax  = 100
	ProfileInterestsMax = 10
	InterestTagMax      = 30
)

type Profile struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserID   int64  `gorm:"column:user_id;uniqueIndex;not null" json:"user_id,string"`
	Name     string `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Bio      string `gorm:"column:bio;type:varchar(500);not null" json:"bio"`
	Headline string `gorm:"column:headline;type:varchar(100);not null" json:"headline"`
	// 有序兴趣标签，同时冗余到 profile_interests 用于筛选和统计
	Interests datatypes.JSONSlice[string] `gorm:"column:interests" json:"interests"`
	PhotoURL  string                      `gorm:"column:photo_url;type:varchar(1024);not null" json:"photo_url"`
	PhotoKey  string                      `gorm:"column:photo_key;type:varchar(255);not null" json:"-"`
	IsActive  bool                        `gorm:"column:is_active;not null;default:true;index:idx_profiles_active_created,priority:1" json:"is_active"`
	CreatedAt time.Time                   `gorm:"column:created_at;not null;index:idx_profiles_active_created,priority:2" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileInterest 兴趣标签倒排
type ProfileInterest struct {
	ProfileID int64  `gorm:"column:profile_id;primaryKey;autoIncrement:false"`
	Tag       string `gorm:"column:tag;type:varchar(30);primaryKey;index"`
}

func (ProfileInterest) TableName() string {
	return "profile_interests"
}
