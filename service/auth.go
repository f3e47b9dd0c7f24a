package service

import (
	"Mingle/config"
	"Mingle/dao"
	"Mingle/pkg/apperr"
	"Mingle/pkg/jwt"
	"Mingle/types"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 输入上限
const passwordMaxBytes = 72

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Signup(ctx context.Context, req types.SignupRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	Me(ctx context.Context, userID int64) (*types.MeResponse, error)
	ResolveViewer(ctx context.Context, accessToken string) (*types.Viewer, error)
}

type AuthService struct {
	Config   *config.Config
	UserDAO  *dao.UserDAO
	Profiles *ProfileService
}

func (s *AuthService) Signup(ctx context.Context, req types.SignupRequest) (*types.AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	// bcrypt 按字节计长度，多字节字符可能绕过 binding 的 max
	if len(req.Password) > passwordMaxBytes {
		return nil, apperr.Validationf("password must be at most %d bytes", passwordMaxBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.Config.App.PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Validationf("password must be at most %d bytes", passwordMaxBytes)
	}
	if err != nil {
		return nil, err
	}

	user, profile, err := s.Profiles.Create(ctx, types.CreateProfileInput{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Bio:          req.Bio,
		Headline:     req.Headline,
		Interests:    req.Interests,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	annotated, err := s.Profiles.Graph.AnnotateOne(ctx, &types.Viewer{UserID: user.ID}, profile)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{
		User:    types.UserView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
		Profile: annotated,
		Tokens:  *tokens,
	}, nil
}

// Login 账号不存在和密码错误返回同样的信息
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.UserDAO.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if dao.IsNotFound(err) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	me, err := s.Me(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: me.User, Profile: me.Profile, Tokens: *tokens}, nil
}

// Refresh 换发 access token，refresh token 临近过期时一并轮换
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.Secret), jwt.TokenTypeRefresh, refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	if err := s.ensureUser(ctx, claims.UserID); err != nil {
		return nil, err
	}

	access, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), claims.UserID, jwt.TokenTypeAccess, s.Config.Jwt.AccessExpire)
	if err != nil {
		return nil, err
	}
	resp := &types.TokenResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.Config.Jwt.AccessExpire.Seconds()),
	}
	if jwt.ShouldRotateRefreshToken(claims, s.Config.Jwt.RefreshRotateBuffer) {
		resp.RefreshToken, err = jwt.GenerateToken([]byte(s.Config.Jwt.Secret), claims.UserID, jwt.TokenTypeRefresh, s.Config.Jwt.RefreshExpire)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*types.MeResponse, error) {
	user, err := s.UserDAO.FindById(ctx, userID)
	if dao.IsNotFound(err) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	profile, err := s.Profiles.GetOwn(ctx, userID)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}
	return &types.MeResponse{
		User:    types.UserView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
		Profile: profile,
	}, nil
}

// ResolveViewer 校验 access token 并确认用户仍然存在
func (s *AuthService) ResolveViewer(ctx context.Context, accessToken string) (*types.Viewer, error) {
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.Secret), jwt.TokenTypeAccess, accessToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	if err := s.ensureUser(ctx, claims.UserID); err != nil {
		return nil, err
	}
	return &types.Viewer{UserID: claims.UserID}, nil
}

func (s *AuthService) ensureUser(ctx context.Context, userID int64) error {
	exist, err := s.UserDAO.ExistsByID(ctx, userID)
	if err != nil {
		return apperr.Store(err)
	}
	if !exist {
		return apperr.Unauthorized("user no longer exists")
	}
	return nil
}

func (s *AuthService) issueTokens(userID int64) (*types.TokenResponse, error) {
	secret := []byte(s.Config.Jwt.Secret)
	if len(secret) == 0 {
		return nil, errors.New("jwt secret not configured")
	}
	access, err := jwt.GenerateToken(secret, userID, jwt.TokenTypeAccess, s.Config.Jwt.AccessExpire)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateToken(secret, userID, jwt.TokenTypeRefresh, s.Config.Jwt.RefreshExpire)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.Config.Jwt.AccessExpire.Seconds()),
	}, nil
}
