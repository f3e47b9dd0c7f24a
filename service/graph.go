package service

import (
	"Mingle/dao"
	"Mingle/models"
	"Mingle/pkg/apperr"
	"Mingle/types"
	"context"
)

var _ IGraphService = (*GraphService)(nil)

type IGraphService interface {
	Annotate(ctx context.Context, viewer *types.Viewer, profiles []*models.Profile) ([]*types.AnnotatedProfile, error)
	AnnotateOne(ctx context.Context, viewer *types.Viewer, profile *models.Profile) (*types.AnnotatedProfile, error)
}

// GraphService 给资料附加点赞/关注统计和当前用户视角的标记，只读
type GraphService struct {
	Tx        *dao.Transactor
	LikeDAO   *dao.ProfileLikeDAO
	FollowDAO *dao.UserFollowDAO
}

// Annotate 一页资料固定五条查询，在同一个只读快照内完成
func (s *GraphService) Annotate(ctx context.Context, viewer *types.Viewer, profiles []*models.Profile) ([]*types.AnnotatedProfile, error) {
	out := make([]*types.AnnotatedProfile, 0, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}

	profileIDs := make([]int64, 0, len(profiles))
	userIDs := make([]int64, 0, len(profiles))
	seenUser := make(map[int64]struct{}, len(profiles))
	for _, p := range profiles {
		profileIDs = append(profileIDs, p.ID)
		if _, ok := seenUser[p.UserID]; !ok {
			seenUser[p.UserID] = struct{}{}
			userIDs = append(userIDs, p.UserID)
		}
	}

	var (
		likes, followers, following map[int64]int64
		liked, followed             = map[int64]bool{}, map[int64]bool{}
	)
	err := s.Tx.ReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if likes, err = s.LikeDAO.CountByProfiles(ctx, profileIDs); err != nil {
			return err
		}
		if followers, err = s.FollowDAO.CountFollowersByUsers(ctx, userIDs); err != nil {
			return err
		}
		if following, err = s.FollowDAO.CountFollowingByUsers(ctx, userIDs); err != nil {
			return err
		}
		if viewer == nil {
			return nil
		}
		if liked, err = s.LikeDAO.LikedProfileIDs(ctx, viewer.UserID, profileIDs); err != nil {
			return err
		}
		followed, err = s.FollowDAO.FollowedUserIDs(ctx, viewer.UserID, userIDs)
		return err
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	for _, p := range profiles {
		item := &types.AnnotatedProfile{
			ProfileView:    ToProfileView(p),
			LikesCount:     likes[p.ID],
			FollowersCount: followers[p.UserID],
			FollowingCount: following[p.UserID],
		}
		if viewer != nil {
			item.IsLiked = liked[p.ID]
			item.IsFollowing = viewer.UserID != p.UserID && followed[p.UserID]
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *GraphService) AnnotateOne(ctx context.Context, viewer *types.Viewer, profile *models.Profile) (*types.AnnotatedProfile, error) {
	items, err := s.Annotate(ctx, viewer, []*models.Profile{profile})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func ToProfileView(p *models.Profile) types.ProfileView {
	interests := make([]string, 0, len(p.Interests))
	interests = append(interests, p.Interests...)
	return types.ProfileView{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Bio:       p.Bio,
		Headline:  p.Headline,
		Interests: interests,
		PhotoURL:  p.PhotoURL,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
