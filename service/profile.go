package service

import (
	"Mingle/dao"
	"Mingle/dao/cache"
	"Mingle/models"
	"Mingle/pkg/apperr"
	"Mingle/pkg/log"
	"Mingle/pkg/snowflake"
	"Mingle/types"
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var _ IProfileService = (*ProfileService)(nil)

type IProfileService interface {
	Create(ctx context.Context, in types.CreateProfileInput) (*models.User, *models.Profile, error)
	GetOwn(ctx context.Context, userID int64) (*types.AnnotatedProfile, error)
	Update(ctx context.Context, userID int64, req types.UpdateProfileRequest) (*types.AnnotatedProfile, error)
	UpdatePhoto(ctx context.Context, userID int64, req types.UpdatePhotoRequest) (*types.AnnotatedProfile, error)
	SetActive(ctx context.Context, userID int64, active bool) (*types.AnnotatedProfile, error)
	Delete(ctx context.Context, userID int64) error
}

// ProfileService 资料的增删改，删除时连带清理关系数据
type ProfileService struct {
	Tx          *dao.Transactor
	UserDAO     *dao.UserDAO
	ProfileDAO  *dao.ProfileDAO
	InterestDAO *dao.ProfileInterestDAO
	LikeDAO     *dao.ProfileLikeDAO
	FollowDAO   *dao.UserFollowDAO
	Graph       *GraphService
	Media       IMediaStore
	Trending    *cache.TrendingStorage
}

// Create 用户和资料在同一个事务里创建
func (s *ProfileService) Create(ctx context.Context, in types.CreateProfileInput) (*models.User, *models.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Interests = NormalizeInterests(in.Interests)
	if err := validateStruct(in); err != nil {
		return nil, nil, err
	}
	if err := checkInterests(in.Interests); err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:       snowflake.GenID(),
		Email:    in.Email,
		Password: in.PasswordHash,
	}
	profile := &models.Profile{
		ID:        snowflake.GenID(),
		UserID:    user.ID,
		Name:      in.Name,
		Bio:       strings.TrimSpace(in.Bio),
		Headline:  strings.TrimSpace(in.Headline),
		Interests: datatypes.JSONSlice[string](in.Interests),
		PhotoURL:  in.PhotoURL,
		IsActive:  true,
	}

	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		exist, err := s.UserDAO.IsExist(ctx, "email = ?", user.Email)
		if err != nil {
			return err
		}
		if exist {
			return apperr.Conflict("email already registered")
		}
		if err := s.UserDAO.Create(ctx, user); err != nil {
			if dao.IsDuplicateKey(err) {
				return apperr.Conflict("email already registered")
			}
			return err
		}
		if err := s.ProfileDAO.Create(ctx, profile); err != nil {
			return err
		}
		return s.InterestDAO.Replace(ctx, profile.ID, in.Interests)
	})
	if err != nil {
		return nil, nil, apperr.Store(err)
	}

	s.invalidateTrending(ctx)
	return user, profile, nil
}

// GetOwn 自己的资料，停用状态也可见
func (s *ProfileService) GetOwn(ctx context.Context, userID int64) (*types.AnnotatedProfile, error) {
	profile, err := s.findOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Graph.AnnotateOne(ctx, &types.Viewer{UserID: userID}, profile)
}

func (s *ProfileService) Update(ctx context.Context, userID int64, req types.UpdateProfileRequest) (*types.AnnotatedProfile, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Interests != nil {
		req.Interests = NormalizeInterests(req.Interests)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := checkInterests(req.Interests); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Headline != nil {
		updates["headline"] = strings.TrimSpace(*req.Headline)
	}
	if req.Interests != nil {
		updates["interests"] = datatypes.JSONSlice[string](req.Interests)
	}

	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		profile, err := s.ProfileDAO.FindByUserID(ctx, userID)
		if dao.IsNotFound(err) {
			return apperr.NotFound("profile not found")
		}
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if _, err := s.ProfileDAO.UpdateById(ctx, profile.ID, updates); err != nil {
			return err
		}
		if req.Interests != nil {
			return s.InterestDAO.Replace(ctx, profile.ID, req.Interests)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	if req.Interests != nil {
		s.invalidateTrending(ctx)
	}
	return s.GetOwn(ctx, userID)
}

// UpdatePhoto 提交成功后再删除旧图片
func (s *ProfileService) UpdatePhoto(ctx context.Context, userID int64, req types.UpdatePhotoRequest) (*types.AnnotatedProfile, error) {
	req.PhotoURL = strings.TrimSpace(req.PhotoURL)
	req.PhotoKey = strings.TrimSpace(req.PhotoKey)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.PhotoKey != "" {
		if !OwnsImageKey(userID, req.PhotoKey) {
			return nil, apperr.Validation("photoKey does not belong to current user")
		}
		if s.Media != nil && req.PhotoURL != s.Media.PublicURL(req.PhotoKey) {
			return nil, apperr.Validation("photoUrl does not match photoKey")
		}
	}

	var oldKey string
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		profile, err := s.ProfileDAO.FindByUserID(ctx, userID)
		if dao.IsNotFound(err) {
			return apperr.NotFound("profile not found")
		}
		if err != nil {
			return err
		}
		oldKey = profile.PhotoKey
		_, err = s.ProfileDAO.UpdateById(ctx, profile.ID, map[string]any{
			"photo_url": req.PhotoURL,
			"photo_key": req.PhotoKey,
		})
		return err
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	if oldKey != "" && oldKey != req.PhotoKey {
		s.deleteMedia(ctx, userID, oldKey)
	}
	return s.GetOwn(ctx, userID)
}

// SetActive 停用后不出现在资料流、搜索和热门兴趣中
func (s *ProfileService) SetActive(ctx context.Context, userID int64, active bool) (*types.AnnotatedProfile, error) {
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		profile, err := s.ProfileDAO.FindByUserID(ctx, userID)
		if dao.IsNotFound(err) {
			return apperr.NotFound("profile not found")
		}
		if err != nil {
			return err
		}
		_, err = s.ProfileDAO.UpdateById(ctx, profile.ID, map[string]any{"is_active": active})
		return err
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	s.invalidateTrending(ctx)
	return s.GetOwn(ctx, userID)
}

// Delete 硬删除用户、资料以及所有相关的点赞和关注
func (s *ProfileService) Delete(ctx context.Context, userID int64) error {
	var photoKey string
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		profile, err := s.ProfileDAO.FindByUserID(ctx, userID)
		if dao.IsNotFound(err) {
			return apperr.NotFound("profile not found")
		}
		if err != nil {
			return err
		}
		photoKey = profile.PhotoKey

		if err := s.LikeDAO.DeleteForUser(ctx, userID, profile.ID); err != nil {
			return err
		}
		if err := s.FollowDAO.DeleteForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.InterestDAO.DeleteByProfileID(ctx, profile.ID); err != nil {
			return err
		}
		if _, err := s.ProfileDAO.DeleteById(ctx, profile.ID); err != nil {
			return err
		}
		_, err = s.UserDAO.DeleteById(ctx, userID)
		return err
	})
	if err != nil {
		return apperr.Store(err)
	}

	s.deleteMedia(ctx, userID, photoKey)
	s.invalidateTrending(ctx)
	log.L.Info("profile deleted", zap.Int64("user_id", userID))
	return nil
}

func (s *ProfileService) findOwn(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.ProfileDAO.FindByUserID(ctx, userID)
	if dao.IsNotFound(err) {
		return nil, apperr.NotFound("profile not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return profile, nil
}

// deleteMedia 图片删除失败只记日志
func (s *ProfileService) deleteMedia(ctx context.Context, userID int64, key string) {
	if key == "" || s.Media == nil {
		return
	}
	// 旧数据里可能存在别人的 key
	if !OwnsImageKey(userID, key) {
		log.L.Warn("skip deleting foreign photo key", zap.Int64("user_id", userID), zap.String("key", key))
		return
	}
	if err := s.Media.Delete(ctx, key); err != nil {
		log.L.Warn("delete profile photo failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProfileService) invalidateTrending(ctx context.Context) {
	if err := s.Trending.Invalidate(ctx); err != nil {
		log.L.Warn("invalidate trending cache failed", zap.Error(err))
	}
}
