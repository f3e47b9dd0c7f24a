package context

import (
	"Mingle/pkg/apperr"
	"Mingle/pkg/log"
	"Mingle/pkg/response"
	stdctx "context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			status, msg := StatusOf(err)
			if status >= http.StatusInternalServerError {
				log.L.Error("request failed",
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
					zap.Int("status", status),
					zap.Error(err),
				)
			}
			response.Fail(c, status, msg)
		}
	}
}

// StatusOf 把错误映射为 HTTP 状态码和对外信息
func StatusOf(err error) (int, string) {
	// 业务错误
	var be *response.BizError
	if errors.As(err, &be) {
		if http.StatusText(be.Code) != "" {
			return be.Code, be.Msg
		}
		return http.StatusOK, be.Msg
	}

	if errors.Is(err, stdctx.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "request timeout"
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindSelfReference:
		return http.StatusBadRequest, apperr.Message(err)
	case apperr.KindNotFound:
		return http.StatusNotFound, apperr.Message(err)
	case apperr.KindConflict:
		return http.StatusConflict, apperr.Message(err)
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized, apperr.Message(err)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, response.NewError(http.StatusUnauthorized, "unauthorized")
	}

	uid, ok := v.(int64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

// GetViewerID 可选登录的接口使用，未登录时返回 false
func GetViewerID(c *gin.Context) (int64, bool) {
	uid, err := GetUserID(c)
	if err != nil {
		return 0, false
	}
	return uid, true
}
