package service

import (
	"Mingle/config"
	"Mingle/dao"
	"Mingle/dao/cache"
	"Mingle/models"
	"Mingle/pkg/apperr"
	"Mingle/pkg/log"
	"Mingle/types"
	"context"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	searchTermMax     = 100
	interestFilterMax = 20
)

var _ IFeedService = (*FeedService)(nil)

type IFeedService interface {
	GetFeed(ctx context.Context, viewer *types.Viewer, q types.FeedQuery) (*types.FeedResponse, error)
	GetProfile(ctx context.Context, viewer *types.Viewer, targetUserID int64) (*types.AnnotatedProfile, error)
	TrendingInterests(ctx context.Context) ([]types.TrendingInterest, error)
}

type FeedService struct {
	Config      *config.Config
	ProfileDAO  *dao.ProfileDAO
	InterestDAO *dao.ProfileInterestDAO
	Graph       *GraphService
	Trending    *cache.TrendingStorage
}

// checkQuery 越界直接拒绝，不做截断
func (s *FeedService) checkQuery(q types.FeedQuery) error {
	if q.Page < 1 {
		return apperr.Validation("page must be >= 1")
	}
	if q.Limit < 1 || q.Limit > s.Config.Feed.MaxLimit {
		return apperr.Validationf("limit must be between 1 and %d", s.Config.Feed.MaxLimit)
	}
	if utf8.RuneCountInString(q.Search) > searchTermMax {
		return apperr.Validationf("search must be at most %d characters", searchTermMax)
	}
	if len(q.Interests) > interestFilterMax {
		return apperr.Validationf("interests filter must contain at most %d tags", interestFilterMax)
	}
	return nil
}

func (s *FeedService) GetFeed(ctx context.Context, viewer *types.Viewer, q types.FeedQuery) (*types.FeedResponse, error) {
	if err := s.checkQuery(q); err != nil {
		return nil, err
	}

	filter := dao.FeedFilter{
		Search:    q.Search,
		Interests: NormalizeInterests(q.Interests),
	}
	if viewer != nil {
		filter.ExcludeUserID = viewer.UserID
	}

	var (
		profiles = make([]*models.Profile, 0)
		total    int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		profiles, err = s.ProfileDAO.ListFeed(egCtx, filter, (q.Page-1)*q.Limit, q.Limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.ProfileDAO.CountFeed(egCtx, filter)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, apperr.Store(err)
	}

	items, err := s.Graph.Annotate(ctx, viewer, profiles)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &types.FeedResponse{
		Profiles: items,
		Pagination: types.Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNext:     q.Page < totalPages,
			HasPrev:     q.Page > 1,
		},
	}, nil
}

// GetProfile 按用户 id 查看他人资料，停用视同不存在
func (s *FeedService) GetProfile(ctx context.Context, viewer *types.Viewer, targetUserID int64) (*types.AnnotatedProfile, error) {
	profile, err := s.ProfileDAO.FindActiveByUserID(ctx, targetUserID)
	if dao.IsNotFound(err) {
		return nil, apperr.NotFound("profile not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return s.Graph.AnnotateOne(ctx, viewer, profile)
}

// TrendingInterests 全量聚合，数据量上来之后靠 redis 缓存兜底
func (s *FeedService) TrendingInterests(ctx context.Context) ([]types.TrendingInterest, error) {
	if items, hit, err := s.Trending.Get(ctx); err != nil {
		log.L.Warn("read trending cache failed", zap.Error(err))
	} else if hit {
		return items, nil
	}
	ver, verErr := s.Trending.Version(ctx)
	if verErr != nil {
		log.L.Warn("read trending cache version failed", zap.Error(verErr))
	}

	rows, err := s.InterestDAO.Trending(ctx, s.Config.Feed.TrendingSize)
	if err != nil {
		return nil, apperr.Store(err)
	}
	items := make([]types.TrendingInterest, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.TrendingInterest{Interest: r.Tag, Count: r.Count})
	}

	if verErr == nil {
		if err := s.Trending.Set(ctx, items, ver); err != nil {
			log.L.Warn("write trending cache failed", zap.Error(err))
		}
	}
	return items, nil
}
