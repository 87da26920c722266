package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"blotmap/internal/atlas"
	"blotmap/internal/cache"
	"blotmap/internal/cards"
	"blotmap/internal/config"
	"blotmap/internal/feed"
	"blotmap/internal/library"
	"blotmap/internal/models"
	"blotmap/internal/security"
	"blotmap/internal/web"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router        *gin.Engine
	library       *library.Library
	renderer      *atlas.Renderer
	clipper       *atlas.BoundaryClipper
	cacheManager  *cache.Manager
	cards         *cards.Builder
	feed          *feed.Builder
	port          int
	mapCfg        config.MapConfig
	spaServer     *web.SPAServer
	swaggerServer *web.SwaggerServer
}

func NewServer(lib *library.Library, renderer *atlas.Renderer, clipper *atlas.BoundaryClipper, cacheManager *cache.Manager, cfg *config.Config) *Server {
	router := gin.Default()

	// Load HTML templates from filesystem (only if SPA is enabled)
	if cfg.EnableSPA {
		router.LoadHTMLGlob("internal/web/templates/*")
	}

	// Setup security middleware
	securityConfig := &security.SecurityConfig{
		EnableRateLimit:       cfg.Security.EnableRateLimit,
		RateLimitPerSecond:    cfg.Security.RateLimitPerSecond,
		RateLimitBurst:        cfg.Security.RateLimitBurst,
		EnableCORS:            cfg.Security.EnableCORS,
		AllowedOrigins:        cfg.Security.AllowedOrigins,
		EnableSecurityHeaders: cfg.Security.EnableSecurityHeaders,
		MaxRequestSize:        cfg.Security.MaxRequestSize,
		EnableRequestID:       cfg.Security.EnableRequestID,
	}
	security.SetupSecurityMiddleware(router, securityConfig)

	// Create web servers
	cardBuilder := cards.NewBuilder()
	spaServer := web.NewSPAServer(cfg.EnableSPA, lib)
	swaggerServer := web.NewSwaggerServer(cfg.EnableSwagger)

	server := &Server{
		router:        router,
		library:       lib,
		renderer:      renderer,
		clipper:       clipper,
		cacheManager:  cacheManager,
		cards:         cardBuilder,
		feed:          feed.NewBuilder(cfg.SiteURL, cardBuilder),
		port:          cfg.Port,
		mapCfg:        cfg.Map,
		spaServer:     spaServer,
		swaggerServer: swaggerServer,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// RSS feed
	s.router.GET("/feed.xml", s.getFeed)

	// API routes
	api := s.router.Group("/api/v1")
	{
		api.GET("/meta", s.getMeta)
		api.GET("/articles", s.getArticles)
		api.GET("/articles/:id", s.getArticle)
		api.GET("/filters", s.getFilters)
		api.GET("/map/blobs", s.getMapBlobs)
		api.POST("/dataset/refresh", s.refreshDataset)
	}

	// Register web interfaces
	s.spaServer.RegisterRoutes(s.router)
	s.swaggerServer.RegisterRoutes(s.router)
}

func (s *Server) Start() error {
	return s.router.Run(":" + strconv.Itoa(s.port))
}

// StartWithContext serves until the context is canceled, then drains
// in-flight requests before returning.
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requireDataset answers 503 when no dataset has ever loaded. Handlers that
// serve article-derived views call this first.
func (s *Server) requireDataset(c *gin.Context) bool {
	if s.library.Ready() {
		return true
	}

	payload := gin.H{"error": "Article dataset unavailable"}
	if err := s.library.Err(); err != nil {
		payload["message"] = err.Error()
	}
	c.JSON(http.StatusServiceUnavailable, payload)
	return false
}

func filterFromQuery(c *gin.Context) models.Filter {
	return models.Filter{
		Country: c.Query("country"),
		Year:    c.Query("year"),
		Search:  c.Query("q"),
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service":          "blotmap",
		"dataset_ready":    s.library.Ready(),
		"clipping_enabled": s.clipper.Enabled(),
		"cache_entries":    s.cacheManager.ItemCount(),
	})
}

func (s *Server) getMeta(c *gin.Context) {
	meta := s.library.Metadata()

	payload := gin.H{
		"blogTitle":       meta.BlogTitle,
		"tagline":         meta.Tagline,
		"ready":           s.library.Ready(),
		"articleCount":    s.library.ArticleCount(),
		"source":          s.library.Source(),
		"clippingEnabled": s.clipper.Enabled(),
		"colorScheme":     s.library.ColorScheme(),
		"defaultColor":    s.mapCfg.DefaultColor,
		"map": gin.H{
			"minZoom":     s.mapCfg.MinZoom,
			"maxZoom":     s.mapCfg.MaxZoom,
			"defaultZoom": s.mapCfg.DefaultZoom,
			"markers":     s.mapCfg.Markers,
		},
	}
	if s.library.Ready() {
		payload["loadedAt"] = s.library.LoadedAt()
	}
	if err := s.library.Err(); err != nil {
		payload["error"] = err.Error()
	}

	c.JSON(http.StatusOK, payload)
}

func (s *Server) getArticles(c *gin.Context) {
	if !s.requireDataset(c) {
		return
	}

	filter := filterFromQuery(c)
	articles := s.library.Articles(filter)

	c.JSON(http.StatusOK, gin.H{
		"articles": s.cards.BuildAll(articles),
		"count":    len(articles),
		"filter":   filter,
	})
}

func (s *Server) getArticle(c *gin.Context) {
	if !s.requireDataset(c) {
		return
	}

	id := c.Param("id")
	article, ok := s.library.Article(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("article '%s' not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, s.cards.Build(article))
}

func (s *Server) getFilters(c *gin.Context) {
	if !s.requireDataset(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countries": s.library.Countries(),
		"years":     s.library.Years(),
	})
}

func (s *Server) getMapBlobs(c *gin.Context) {
	if !s.requireDataset(c) {
		return
	}

	filter := filterFromQuery(c)
	articles := s.library.Articles(filter)
	view := s.renderer.Render(articles, s.library.ColorScheme())

	c.JSON(http.StatusOK, view)
}

func (s *Server) refreshDataset(c *gin.Context) {
	if err := s.library.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Dataset refreshed successfully",
		"articles": s.library.ArticleCount(),
	})
}

func (s *Server) getFeed(c *gin.Context) {
	if !s.requireDataset(c) {
		return
	}

	xml, err := s.feed.RSS(s.library.Metadata(), s.library.Articles(models.Filter{}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(xml))
}
