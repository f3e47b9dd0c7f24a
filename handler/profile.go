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

type Profile struct {
	Config         *config.Config
	ProfileService service.IProfileService
	AuthService    service.IAuthService
}

func (p *Profile) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/me/profile", middleware.Auth(p.AuthService))
	g.GET("", context.Wrap(p.Get))
	g.PUT("", context.Wrap(p.Update))
	g.DELETE("", context.Wrap(p.Delete))
	g.PUT("/photo", context.Wrap(p.UpdatePhoto))
	g.PUT("/active", context.Wrap(p.SetActive))
}

func (p *Profile) Get(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	profile, err := p.ProfileService.GetOwn(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.ProfileResponse{Profile: profile})
	return nil
}

// Update 局部更新，未传字段保持不变
func (p *Profile) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	profile, err := p.ProfileService.Update(c.Request.Context(), userID, req)
	if err != nil {
		return err
	}
	response.Success(c, types.ProfileResponse{Profile: profile})
	return nil
}

func (p *Profile) UpdatePhoto(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	profile, err := p.ProfileService.UpdatePhoto(c.Request.Context(), userID, req)
	if err != nil {
		return err
	}
	response.Success(c, types.ProfileResponse{Profile: profile})
	return nil
}

func (p *Profile) SetActive(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	profile, err := p.ProfileService.SetActive(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		return err
	}
	response.Success(c, types.ProfileResponse{Profile: profile})
	return nil
}

// Delete 注销账号，资料和关系数据一并删除
func (p *Profile) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	if err := p.ProfileService.Delete(c.Request.Context(), userID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}
