package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func ok(c *gin.Context) {
	c.String(http.StatusOK, c.FullPath())
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.guard)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", ok)
	r.Register(group).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/test/ping").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestDomainGroup_Protection(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithGuard(denyAll))

	papers := NewDomainGroup("papers", "/papers")
	papers.GET("/:owner", ok)
	private := papers.Protected()
	private.POST("", ok)
	private.PATCH("/:owner/:id", ok)

	assert.False(t, papers.IsProtected())
	assert.True(t, private.IsProtected())
	assert.Equal(t, "papers", private.Name())
	assert.Equal(t, "", private.Prefix())

	r.Register(papers).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/papers/alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/papers/:owner", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/papers").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPatch, "/api/v1/papers/alice/1").Code)
}

func TestDomainGroup_SubgroupsInheritProtection(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithGuard(denyAll))

	platform := NewDomainGroup("platform", "/platform")
	admin := platform.Protected().Group("admin", "/admins")
	admin.POST("", ok)
	open := platform.Group("public", "/public")
	open.GET("/fee", ok)

	assert.True(t, admin.IsProtected())
	assert.False(t, open.IsProtected())

	r.Register(platform).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/platform/admins").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/platform/public/fee").Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var calls int
	group := NewDomainGroup("badges", "/badges").Use(func(c *gin.Context) {
		calls++
		c.Next()
	})
	group.GET("/:owner", ok)
	group.Protected().POST("/mint", ok)

	r.Register(group).Setup()

	serve(engine, http.MethodGet, "/api/v1/badges/alice")
	serve(engine, http.MethodPost, "/api/v1/badges/mint")
	assert.Equal(t, 2, calls)
}

func TestDomainGroup_ChainedCalls(t *testing.T) {
	group := NewDomainGroup("accounts", "/accounts").
		GET("/:identity", ok).
		POST("", ok).
		PUT("/a", ok).
		PATCH("/me", ok)

	assert.Len(t, group.routes, 4)
	assert.Equal(t, http.MethodPatch, group.routes[3].method)
}
