package middleware

import (
	"Mingle/pkg/apperr"
	appctx "Mingle/pkg/context"
	"Mingle/types"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type stubResolver struct {
	users map[string]int64
	err   error
}

func (s stubResolver) ResolveViewer(_ context.Context, token string) (*types.Viewer, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id, ok := s.users[token]; ok {
		return &types.Viewer{UserID: id}, nil
	}
	return nil, apperr.Unauthorized("invalid token")
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		id, ok := appctx.GetViewerID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, strconv.FormatInt(id, 10))
	})
	return r
}

func do(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newRouter(Auth(stubResolver{users: map[string]int64{"good": 7}}))

	if w := do(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := do(r, "Token good"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad scheme: expected 401, got %d", w.Code)
	}
	if w := do(r, "Bearer bad"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
	w := do(r, "Bearer good")
	if w.Code != http.StatusOK || w.Body.String() != "7" {
		t.Fatalf("expected viewer 7, got %d %q", w.Code, w.Body.String())
	}
}

func TestAuth_StoreFailure(t *testing.T) {
	r := newRouter(Auth(stubResolver{err: apperr.Store(errors.New("db down"))}))
	if w := do(r, "Bearer good"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestAuth_ResolveDeadline(t *testing.T) {
	err := apperr.Store(fmt.Errorf("find user: %w", context.DeadlineExceeded))
	r := newRouter(Auth(stubResolver{err: err}))
	w := do(r, "Bearer good")
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "request timeout") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newRouter(OptionalAuth(stubResolver{users: map[string]int64{"good": 9}}))

	if w := do(r, ""); w.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous, got %q", w.Body.String())
	}
	if w := do(r, "Bearer expired"); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("invalid token should fall back to anonymous, got %d %q", w.Code, w.Body.String())
	}
	if w := do(r, "Bearer good"); w.Body.String() != "9" {
		t.Fatalf("expected viewer 9, got %q", w.Body.String())
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", Timeout(20*time.Millisecond), func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.String(http.StatusGatewayTimeout, c.Request.Context().Err().Error())
		case <-time.After(time.Second):
			c.String(http.StatusOK, "late")
		}
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", w.Code)
	}
}
