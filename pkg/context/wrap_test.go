package context

import (
	"Mingle/pkg/apperr"
	"Mingle/pkg/response"
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.Validation("page must be >= 1"), http.StatusBadRequest, "page must be >= 1"},
		{"self reference", apperr.SelfReference("cannot follow yourself"), http.StatusBadRequest, "cannot follow yourself"},
		{"not found", apperr.NotFound("profile not found"), http.StatusNotFound, "profile not found"},
		{"conflict", apperr.Conflict("email already registered"), http.StatusConflict, "email already registered"},
		{"unauthorized", apperr.Unauthorized("invalid token"), http.StatusUnauthorized, "invalid token"},
		{"store", apperr.Store(errors.New("dial tcp: refused")), http.StatusInternalServerError, "internal server error"},
		{"timeout", apperr.Store(fmt.Errorf("count: %w", stdctx.DeadlineExceeded)), http.StatusGatewayTimeout, "request timeout"},
		{"biz", response.NewError(http.StatusUnauthorized, "missing token"), http.StatusUnauthorized, "missing token"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, msg := StatusOf(c.err)
			if status != c.status || msg != c.msg {
				t.Fatalf("StatusOf = (%d, %q), want (%d, %q)", status, msg, c.status, c.msg)
			}
		})
	}
}

func TestWrap_WritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", Wrap(func(c *gin.Context) error {
		return apperr.NotFound("user not found")
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != http.StatusNotFound || body.Msg != "user not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetViewerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := GetViewerID(c); ok {
		t.Fatal("expected anonymous viewer")
	}
	c.Set(CtxUserID, int64(42))
	id, ok := GetViewerID(c)
	if !ok || id != 42 {
		t.Fatalf("unexpected viewer %d %v", id, ok)
	}
}
