package dao

import (
	"Mingle/models"
	"context"

	"gorm.io/gorm"
)

type TagCount struct {
	Tag   string `gorm:"column:tag"`
	Count int64  `gorm:"column:cnt"`
}

type ProfileInterestDAO struct {
	Repo[models.ProfileInterest]
}

func NewProfileInterestDAO(db *gorm.DB) *ProfileInterestDAO {
	return &ProfileInterestDAO{Repo: NewRepo[models.ProfileInterest](db)}
}

// Replace 覆盖资料的兴趣标签，需要在事务中调用
func (d *ProfileInterestDAO) Replace(ctx context.Context, profileID int64, tags []string) error {
	if err := d.DeleteByProfileID(ctx, profileID); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.ProfileInterest, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, models.ProfileInterest{ProfileID: profileID, Tag: tag})
	}
	return d.Conn(ctx).Create(&rows).Error
}

func (d *ProfileInterestDAO) DeleteByProfileID(ctx context.Context, profileID int64) error {
	return d.Conn(ctx).Where("profile_id = ?", profileID).Delete(&models.ProfileInterest{}).Error
}

// Trending 全表聚合启用资料的标签，数量倒序、标签字典序
func (d *ProfileInterestDAO) Trending(ctx context.Context, limit int) ([]TagCount, error) {
	out := make([]TagCount, 0, limit)
	err := d.Conn(ctx).
		Table("profile_interests").
		Select("profile_interests.tag AS tag, COUNT(*) AS cnt").
		Joins("JOIN profiles ON profiles.id = profile_interests.profile_id").
		Where("profiles.is_active = ?", true).
		Group("profile_interests.tag").
		Order("cnt DESC").
		Order("profile_interests.tag ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
