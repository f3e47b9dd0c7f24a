package dao

import (
	"Mingle/models"
	"context"

	"gorm.io/gorm"
)

type UserFollowDAO struct {
	Repo[models.UserFollow]
}

func NewUserFollowDAO(db *gorm.DB) *UserFollowDAO {
	return &UserFollowDAO{
		Repo: NewRepo[models.UserFollow](db),
	}
}

// Find 查询关注关系，不存在时返回 nil
func (d *UserFollowDAO) Find(ctx context.Context, followerID, followingID int64) (*models.UserFollow, error) {
	var item models.UserFollow
	err := d.Conn(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// CountFollowers 获取粉丝数
func (d *UserFollowDAO) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.Conn(ctx).
		Model(&models.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollowing 获取关注数
func (d *UserFollowDAO) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.Conn(ctx).
		Model(&models.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (d *UserFollowDAO) CountFollowersByUsers(ctx context.Context, userIDs []int64) (map[int64]int64, error) {
	return d.countGrouped(ctx, "following_id", userIDs)
}

func (d *UserFollowDAO) CountFollowingByUsers(ctx context.Context, userIDs []int64) (map[int64]int64, error) {
	return d.countGrouped(ctx, "follower_id", userIDs)
}

func (d *UserFollowDAO) countGrouped(ctx context.Context, column string, userIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []idCount
	err := d.Conn(ctx).
		Model(&models.UserFollow{}).
		Select(column+" AS id, COUNT(*) AS cnt").
		Where(column+" IN ?", userIDs).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.Cnt
	}
	return out, nil
}

// FollowedUserIDs followerID 在给定用户中已关注的
func (d *UserFollowDAO) FollowedUserIDs(ctx context.Context, followerID int64, userIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var ids []int64
	err := d.Conn(ctx).
		Model(&models.UserFollow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, userIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListFollowing 用户关注的人，按关注时间倒序
func (d *UserFollowDAO) ListFollowing(ctx context.Context, userID int64) ([]models.UserFollow, error) {
	var list []models.UserFollow
	err := d.Conn(ctx).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	return list, err
}

// ListFollowers 用户的粉丝，按关注时间倒序
func (d *UserFollowDAO) ListFollowers(ctx context.Context, userID int64) ([]models.UserFollow, error) {
	var list []models.UserFollow
	err := d.Conn(ctx).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	return list, err
}

// DeleteForUser 删除用户相关的全部关注关系
func (d *UserFollowDAO) DeleteForUser(ctx context.Context, userID int64) error {
	return d.Conn(ctx).
		Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&models.UserFollow{}).Error
}
