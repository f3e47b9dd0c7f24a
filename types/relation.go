package types

import "time"

type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type FollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

// Connection 关注/粉丝列表项
type Connection struct {
	UserID         int64        `json:"userId,string"`
	Profile        *ProfileView `json:"profile"`
	FollowersCount int64        `json:"followersCount"`
	FollowingCount int64        `json:"followingCount"`
	FollowedAt     time.Time    `json:"followedAt"`
}

type ConnectionsResponse struct {
	Users []*Connection `json:"users"`
	Total int           `json:"total"`
}
