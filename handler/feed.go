package handler

import (
	"Mingle/config"
	"Mingle/middleware"
	"Mingle/pkg/context"
	"Mingle/pkg/response"
	"Mingle/service"
	"Mingle/types"
	"strings"

	"github.com/gin-gonic/gin"
)

type Feed struct {
	Config      *config.Config
	FeedService service.IFeedService
	AuthService service.IAuthService
}

func (f *Feed) RegisterRouter(r gin.IRouter) {
	optional := middleware.OptionalAuth(f.AuthService)
	r.GET("/v1/feed", optional, context.Wrap(f.GetFeed))
	r.GET("/v1/users/:user_id", optional, context.Wrap(f.GetProfile))
	r.GET("/v1/interests/trending", context.Wrap(f.Trending))
}

// GetFeed 资料流，支持分页、搜索和兴趣筛选
func (f *Feed) GetFeed(c *gin.Context) error {
	var req types.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindError(err)
	}
	limit := f.Config.Feed.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	resp, err := f.FeedService.GetFeed(c.Request.Context(), viewerOf(c), types.FeedQuery{
		Page:      req.Page,
		Limit:     limit,
		Search:    strings.TrimSpace(req.Search),
		Interests: service.ParseInterestFilter(req.Interests),
	})
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// GetProfile 按用户 id 查看资料
func (f *Feed) GetProfile(c *gin.Context) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	profile, err := f.FeedService.GetProfile(c.Request.Context(), viewerOf(c), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.ProfileResponse{Profile: profile})
	return nil
}

func (f *Feed) Trending(c *gin.Context) error {
	items, err := f.FeedService.TrendingInterests(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, types.TrendingResponse{Trending: items})
	return nil
}
