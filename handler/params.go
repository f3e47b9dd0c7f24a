package handler

import (
	"Mingle/pkg/apperr"
	"Mingle/pkg/context"
	"Mingle/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return id, nil
}

// viewerOf 未登录返回 nil
func viewerOf(c *gin.Context) *types.Viewer {
	if uid, ok := context.GetViewerID(c); ok {
		return &types.Viewer{UserID: uid}
	}
	return nil
}

func bindError(err error) error {
	return apperr.Validation(err.Error())
}
