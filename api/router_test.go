package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func (pingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/secret", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
}

func TestRouterServer(t *testing.T) {
	srv := NewRouter(Config{Addr: "127.0.0.1:8080", BaseURL: "/api"}).Server()
	assert.Equal(t, "127.0.0.1:8080", srv.Addr)
	assert.NotNil(t, srv.Handler)
}

func TestRouterEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	engine := NewRouter(Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{pingController{}},
		AuthorizationMiddleware: deny,
	}).Engine()

	cases := map[string]int{
		"/api/v1/ping":   http.StatusOK,
		"/api/v1/secret": http.StatusUnauthorized,
		"/v1/ping":       http.StatusNotFound,
	}
	for path, status := range cases {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}
