package middleware

import (
	appctx "Mingle/pkg/context"
	"Mingle/pkg/log"
	"Mingle/pkg/response"
	"Mingle/types"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewerResolver 校验 token 并返回当前用户
type ViewerResolver interface {
	ResolveViewer(ctx context.Context, accessToken string) (*types.Viewer, error)
}

func Auth(resolver ViewerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing or malformed Authorization header")
			return
		}

		viewer, err := resolver.ResolveViewer(c.Request.Context(), token)
		if err != nil {
			// 状态码与 handler 保持一致
			status, msg := appctx.StatusOf(err)
			if status >= http.StatusInternalServerError {
				log.L.Error("resolve viewer failed", zap.Int("status", status), zap.Error(err))
			}
			response.Abort(c, status, msg)
			return
		}
		c.Set(appctx.CtxUserID, viewer.UserID)

		c.Next()
	}
}

// OptionalAuth token 缺失或无效时按匿名用户处理
func OptionalAuth(resolver ViewerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		viewer, err := resolver.ResolveViewer(c.Request.Context(), token)
		if err != nil {
			log.L.Debug("optional auth ignored token", zap.Error(err))
			c.Next()
			return
		}
		c.Set(appctx.CtxUserID, viewer.UserID)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
