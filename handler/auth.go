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

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/auth")
	g.POST("/signup", context.Wrap(u.Signup))
	g.POST("/login", context.Wrap(u.Login))
	g.POST("/refresh", context.Wrap(u.Refresh))
	g.GET("/me", middleware.Auth(u.AuthService), context.Wrap(u.Me))
}

// Signup 注册并创建资料
func (u *Auth) Signup(c *gin.Context) error {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	resp, err := u.AuthService.Signup(c.Request.Context(), req)
	if err != nil {
		return err
	}
	response.Created(c, resp)
	return nil
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	resp, err := u.AuthService.Login(c.Request.Context(), req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) Refresh(c *gin.Context) error {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	resp, err := u.AuthService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) Me(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	resp, err := u.AuthService.Me(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
