package web

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blotmap/internal/library"
)

// SPAServer handles serving the map page and its assets
type SPAServer struct {
	enabled bool
	library *library.Library
}

// NewSPAServer creates a new SPA server instance
func NewSPAServer(enabled bool, lib *library.Library) *SPAServer {
	if enabled {
		log.Println("SPA Server enabled")
	}
	return &SPAServer{enabled: enabled, library: lib}
}

// RegisterRoutes registers the SPA routes with the Gin router
func (s *SPAServer) RegisterRoutes(router *gin.Engine) {
	if !s.enabled {
		log.Println("SPA Server is disabled")
		return
	}

	log.Println("Registering SPA routes...")

	// Serve the main SPA page
	router.GET("/", s.serveSPA)

	// Serve static assets from filesystem
	router.Static("/static", "./internal/web/static")

	log.Println("SPA routes registered successfully")
}

// serveSPA serves the main SPA HTML page
func (s *SPAServer) serveSPA(c *gin.Context) {
	meta := s.library.Metadata()

	title := meta.BlogTitle
	if title == "" {
		title = "Travel Map"
	}

	c.HTML(http.StatusOK, "spa.html", gin.H{
		"title":     title,
		"tagline":   meta.Tagline,
		"timestamp": time.Now().Unix(),
	})
}
