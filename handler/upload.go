package handler

import (
	"Mingle/config"
	"Mingle/middleware"
	"Mingle/pkg/apperr"
	"Mingle/pkg/context"
	"Mingle/pkg/response"
	"Mingle/service"
	"Mingle/types"

	"github.com/gin-gonic/gin"
)

type Upload struct {
	Config      *config.Config
	Media       service.IMediaStore
	AuthService service.IAuthService
}

func (u *Upload) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/upload", middleware.Auth(u.AuthService))
	g.POST("/profile-image", context.Wrap(u.ProfileImage))
	g.POST("/presigned-url", context.Wrap(u.PresignedURL))
}

// ProfileImage 表单字段 image
func (u *Upload) ProfileImage(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("image")
	if err != nil {
		return apperr.Validation("missing image")
	}
	resp, err := u.Media.Upload(c.Request.Context(), userID, header)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (u *Upload) PresignedURL(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	resp, err := u.Media.Presign(c.Request.Context(), userID, req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
