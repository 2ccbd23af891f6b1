package api

import (
	"net/http"

	"github.com/beka-birhanu/vinom-mouse/api/i"
	"github.com/gin-gonic/gin"
)

// Router serves recorded sessions through the registered controllers.
type Router struct {
	addr                    string
	baseURL                 string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
	metricsHandler          http.Handler
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr                    string // Address to listen on
	BaseURL                 string // Base URL for API routes
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc
	MetricsHandler          http.Handler // Served at /metrics when set
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
		metricsHandler:          config.MetricsHandler,
	}
}

// Handler builds the gin engine. Every controller registers on two groups
// under baseURL/v1: a public one and one behind the authorization middleware.
// /healthz and, when configured, /metrics sit outside baseURL.
func (r *Router) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no route for " + c.Request.URL.Path})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if r.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(r.metricsHandler))
	}

	public := r.group(router)
	for _, c := range r.controllers {
		c.RegisterPublic(public)
	}

	protected := r.group(router, r.authorizationMiddleware)
	for _, c := range r.controllers {
		c.RegisterProtected(protected)
	}

	return router
}

func (r *Router) group(router *gin.Engine, middleware ...gin.HandlerFunc) *gin.RouterGroup {
	g := router.Group(r.baseURL + "/v1")
	for _, m := range middleware {
		if m != nil {
			g.Use(m)
		}
	}
	return g
}

// Run starts the HTTP server.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	return r.Handler().Run(r.addr)
}
