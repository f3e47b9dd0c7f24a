package dao

import (
	"Mingle/models"
	"context"

	"gorm.io/gorm"
)

type idCount struct {
	ID  int64 `gorm:"column:id"`
	Cnt int64 `gorm:"column:cnt"`
}

type ProfileLikeDAO struct {
	Repo[models.ProfileLike]
}

func NewProfileLikeDAO(db *gorm.DB) *ProfileLikeDAO {
	return &ProfileLikeDAO{Repo: NewRepo[models.ProfileLike](db)}
}

// Find 查询用户对资料的点赞记录，不存在时返回 nil
func (d *ProfileLikeDAO) Find(ctx context.Context, userID, profileID int64) (*models.ProfileLike, error) {
	var item models.ProfileLike
	err := d.Conn(ctx).Where("user_id = ? AND profile_id = ?", userID, profileID).Limit(1).Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (d *ProfileLikeDAO) CountByProfile(ctx context.Context, profileID int64) (int64, error) {
	var count int64
	err := d.Conn(ctx).Model(&models.ProfileLike{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}

// CountByProfiles 批量统计点赞数，没有点赞的资料不在结果中
func (d *ProfileLikeDAO) CountByProfiles(ctx context.Context, profileIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}
	var rows []idCount
	err := d.Conn(ctx).
		Model(&models.ProfileLike{}).
		Select("profile_id AS id, COUNT(*) AS cnt").
		Where("profile_id IN ?", profileIDs).
		Group("profile_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.Cnt
	}
	return out, nil
}

// LikedProfileIDs 用户在给定资料中点赞过的
func (d *ProfileLikeDAO) LikedProfileIDs(ctx context.Context, userID int64, profileIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}
	var ids []int64
	err := d.Conn(ctx).
		Model(&models.ProfileLike{}).
		Where("user_id = ? AND profile_id IN ?", userID, profileIDs).
		Pluck("profile_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// DeleteForUser 删除用户发出的点赞以及其资料收到的点赞
func (d *ProfileLikeDAO) DeleteForUser(ctx context.Context, userID, profileID int64) error {
	return d.Conn(ctx).
		Where("user_id = ? OR profile_id = ?", userID, profileID).
		Delete(&models.ProfileLike{}).Error
}
