package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		readyErr bool
		path     string
		want     int
	}{
		{name: "healthz ok", readyErr: false, path: "/healthz", want: 200},
		{name: "readyz ok", readyErr: false, path: "/readyz", want: 200},
		{name: "readyz degraded", readyErr: true, path: "/readyz", want: 503},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ready func(context.Context) error
			if tc.path == "/readyz" {
				if tc.readyErr {
					ready = func(context.Context) error { return assertErr{} }
				} else {
					ready = func(context.Context) error { return nil }
				}
			}

			r := gin.New()
			NewHealthHandler(ready).Register(r)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
		})
	}
}

func TestHealthHandler_NilCheckIsReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler(nil).Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != 200 {
		t.Fatalf("want 200 got %d", w.Code)
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
