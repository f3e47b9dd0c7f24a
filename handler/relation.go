package handler

import (
	"Mingle/config"
	"Mingle/middleware"
	"Mingle/pkg/context"
	"Mingle/pkg/response"
	"Mingle/service"
	"Mingle/types"

	"github.com/gin-gonic/gin"
)

type Relation struct {
	Config          *config.Config
	RelationService service.IRelationService
	AuthService     service.IAuthService
}

func (h *Relation) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.AuthService)
	r.POST("/v1/users/:user_id/follow", authorize, context.Wrap(h.ToggleFollow))
	r.POST("/v1/profiles/:profile_id/like", authorize, context.Wrap(h.ToggleLike))
	r.GET("/v1/me/following", authorize, context.Wrap(h.ListFollowing))
	r.GET("/v1/me/followers", authorize, context.Wrap(h.ListFollowers))
}

// ToggleFollow 关注/取消关注
func (h *Relation) ToggleFollow(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	targetUserID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	result, err := h.RelationService.ToggleFollow(c.Request.Context(), userID, targetUserID)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

// ToggleLike 点赞/取消点赞，按资料 id 寻址
func (h *Relation) ToggleLike(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	profileID, err := paramID(c, "profile_id")
	if err != nil {
		return err
	}
	result, err := h.RelationService.ToggleLike(c.Request.Context(), userID, profileID)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

func (h *Relation) ListFollowing(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	users, err := h.RelationService.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.ConnectionsResponse{Users: users, Total: len(users)})
	return nil
}

func (h *Relation) ListFollowers(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	users, err := h.RelationService.ListFollowers(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.ConnectionsResponse{Users: users, Total: len(users)})
	return nil
}
