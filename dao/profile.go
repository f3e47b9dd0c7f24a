package dao

import (
	"Mingle/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

// FeedFilter 资料流筛选条件，空值表示不过滤
type FeedFilter struct {
	ExcludeUserID int64
	Search        string
	Interests     []string
}

type ProfileDAO struct {
	Repo[models.Profile]
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{Repo: NewRepo[models.Profile](db)}
}

// visible 已启用且所属用户存在的资料
func (d *ProfileDAO) visible(ctx context.Context) *gorm.DB {
	return d.Conn(ctx).
		Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.is_active = ?", true)
}

func (d *ProfileDAO) FindByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return d.FindByWhere(ctx, "user_id = ?", userID)
}

func (d *ProfileDAO) FindActiveByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	var p models.Profile
	err := d.visible(ctx).Select("profiles.*").Where("profiles.user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *ProfileDAO) FindActiveByID(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	err := d.visible(ctx).Select("profiles.*").Where("profiles.id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUserIDs 不区分启用状态
func (d *ProfileDAO) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*models.Profile, error) {
	list := make([]*models.Profile, 0, len(userIDs))
	if len(userIDs) == 0 {
		return list, nil
	}
	err := d.Conn(ctx).Where("user_id IN ?", userIDs).Find(&list).Error
	return list, err
}

func (d *ProfileDAO) feedQuery(ctx context.Context, f FeedFilter) *gorm.DB {
	q := d.visible(ctx)
	if f.ExcludeUserID != 0 {
		q = q.Where("profiles.user_id <> ?", f.ExcludeUserID)
	}
	if f.Search != "" {
		pattern := "%" + EscapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where("(LOWER(profiles.name) LIKE ? ESCAPE '!' OR LOWER(profiles.bio) LIKE ? ESCAPE '!' OR LOWER(profiles.headline) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern)
	}
	if len(f.Interests) > 0 {
		sub := d.Conn(ctx).Model(&models.ProfileInterest{}).Select("profile_id").Where("tag IN ?", f.Interests)
		q = q.Where("profiles.id IN (?)", sub)
	}
	return q
}

// ListFeed 按创建时间倒序，id 兜底保证分页稳定
func (d *ProfileDAO) ListFeed(ctx context.Context, f FeedFilter, offset, limit int) ([]*models.Profile, error) {
	list := make([]*models.Profile, 0, limit)
	err := d.feedQuery(ctx, f).
		Select("profiles.*").
		Order("profiles.created_at DESC").
		Order("profiles.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (d *ProfileDAO) CountFeed(ctx context.Context, f FeedFilter) (int64, error) {
	var total int64
	err := d.feedQuery(ctx, f).Count(&total).Error
	return total, err
}

// EscapeLike 转义 LIKE 通配符，配合 ESCAPE '!' 使用
func EscapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
