package service

import (
	"Mingle/dao"
	"Mingle/models"
	"Mingle/pkg/apperr"
	"Mingle/types"
	"context"
	"database/sql"
)

// 读已提交：唯一键冲突后的计数要能看到并发事务刚提交的行
var toggleTxOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

var _ IRelationService = (*RelationService)(nil)

type IRelationService interface {
	ToggleLike(ctx context.Context, viewerID, profileID int64) (*types.LikeResult, error)
	ToggleFollow(ctx context.Context, viewerID, targetUserID int64) (*types.FollowResult, error)
	CountLikes(ctx context.Context, profileID int64) (int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	ListFollowing(ctx context.Context, userID int64) ([]*types.Connection, error)
	ListFollowers(ctx context.Context, userID int64) ([]*types.Connection, error)
}

// RelationService 点赞、关注关系的唯一写入方
type RelationService struct {
	Tx         *dao.Transactor
	LikeDAO    *dao.ProfileLikeDAO
	FollowDAO  *dao.UserFollowDAO
	ProfileDAO *dao.ProfileDAO
	UserDAO    *dao.UserDAO
}

// ToggleLike 有则取消、无则点赞。并发插入撞上唯一键时视为已点赞
func (s *RelationService) ToggleLike(ctx context.Context, viewerID, profileID int64) (*types.LikeResult, error) {
	result := &types.LikeResult{}
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		profile, err := s.ProfileDAO.FindActiveByID(ctx, profileID)
		if dao.IsNotFound(err) {
			return apperr.NotFound("profile not found")
		}
		if err != nil {
			return err
		}
		if profile.UserID == viewerID {
			return apperr.SelfReference("cannot like your own profile")
		}

		existing, err := s.LikeDAO.Find(ctx, viewerID, profileID)
		if err != nil {
			return err
		}
		if existing != nil {
			// 已被并发请求删除时影响行数为 0，结果同样是未点赞
			if _, err := s.LikeDAO.DeleteById(ctx, existing.ID); err != nil {
				return err
			}
			result.Liked = false
		} else {
			like := &models.ProfileLike{UserID: viewerID, ProfileID: profileID}
			if err := s.LikeDAO.CreateInSavepoint(ctx, like); err != nil && !dao.IsDuplicateKey(err) {
				return err
			}
			result.Liked = true
		}

		result.LikesCount, err = s.LikeDAO.CountByProfile(ctx, profileID)
		return err
	}, toggleTxOptions)
	if err != nil {
		return nil, apperr.Store(err)
	}
	observeToggle("like", result.Liked)
	return result, nil
}

// ToggleFollow 返回的计数是被关注人的粉丝数和关注数
func (s *RelationService) ToggleFollow(ctx context.Context, viewerID, targetUserID int64) (*types.FollowResult, error) {
	// 不能关注自己
	if viewerID == targetUserID {
		return nil, apperr.SelfReference("cannot follow yourself")
	}

	result := &types.FollowResult{}
	err := s.Tx.Transaction(ctx, func(ctx context.Context) error {
		exist, err := s.UserDAO.ExistsByID(ctx, targetUserID)
		if err != nil {
			return err
		}
		if !exist {
			return apperr.NotFound("user not found")
		}

		existing, err := s.FollowDAO.Find(ctx, viewerID, targetUserID)
		if err != nil {
			return err
		}
		if existing != nil {
			if _, err := s.FollowDAO.DeleteById(ctx, existing.ID); err != nil {
				return err
			}
			result.Following = false
		} else {
			follow := &models.UserFollow{FollowerID: viewerID, FollowingID: targetUserID}
			if err := s.FollowDAO.CreateInSavepoint(ctx, follow); err != nil && !dao.IsDuplicateKey(err) {
				return err
			}
			result.Following = true
		}

		if result.FollowersCount, err = s.FollowDAO.CountFollowers(ctx, targetUserID); err != nil {
			return err
		}
		result.FollowingCount, err = s.FollowDAO.CountFollowing(ctx, targetUserID)
		return err
	}, toggleTxOptions)
	if err != nil {
		return nil, apperr.Store(err)
	}
	observeToggle("follow", result.Following)
	return result, nil
}

func (s *RelationService) CountLikes(ctx context.Context, profileID int64) (int64, error) {
	n, err := s.LikeDAO.CountByProfile(ctx, profileID)
	return n, apperr.Store(err)
}

func (s *RelationService) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	n, err := s.FollowDAO.CountFollowers(ctx, userID)
	return n, apperr.Store(err)
}

func (s *RelationService) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	n, err := s.FollowDAO.CountFollowing(ctx, userID)
	return n, apperr.Store(err)
}

// ListFollowing 我关注的人
func (s *RelationService) ListFollowing(ctx context.Context, userID int64) ([]*types.Connection, error) {
	return s.listConnections(ctx, userID, true)
}

// ListFollowers 关注我的人
func (s *RelationService) ListFollowers(ctx context.Context, userID int64) ([]*types.Connection, error) {
	return s.listConnections(ctx, userID, false)
}

func (s *RelationService) listConnections(ctx context.Context, userID int64, outgoing bool) ([]*types.Connection, error) {
	var out []*types.Connection
	err := s.Tx.ReadSnapshot(ctx, func(ctx context.Context) error {
		var (
			edges []models.UserFollow
			err   error
		)
		if outgoing {
			edges, err = s.FollowDAO.ListFollowing(ctx, userID)
		} else {
			edges, err = s.FollowDAO.ListFollowers(ctx, userID)
		}
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(edges))
		for _, e := range edges {
			if outgoing {
				ids = append(ids, e.FollowingID)
			} else {
				ids = append(ids, e.FollowerID)
			}
		}

		profiles, err := s.ProfileDAO.ListByUserIDs(ctx, ids)
		if err != nil {
			return err
		}
		byUser := make(map[int64]*models.Profile, len(profiles))
		for _, p := range profiles {
			byUser[p.UserID] = p
		}
		followers, err := s.FollowDAO.CountFollowersByUsers(ctx, ids)
		if err != nil {
			return err
		}
		following, err := s.FollowDAO.CountFollowingByUsers(ctx, ids)
		if err != nil {
			return err
		}

		out = make([]*types.Connection, 0, len(edges))
		for i, e := range edges {
			id := ids[i]
			conn := &types.Connection{
				UserID:         id,
				FollowersCount: followers[id],
				FollowingCount: following[id],
				FollowedAt:     e.CreatedAt,
			}
			if p, ok := byUser[id]; ok {
				view := ToProfileView(p)
				conn.Profile = &view
			}
			out = append(out, conn)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store(err)
	}
	return out, nil
}
