package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)

	// Test getting limiter for same IP
	ip1 := "192.168.1.1"
	limiter1 := limiter.GetLimiter(ip1)
	limiter2 := limiter.GetLimiter(ip1)

	if limiter1 != limiter2 {
		t.Error("Expected same limiter for same IP")
	}

	// Test getting limiter for different IP
	ip2 := "192.168.1.2"
	limiter3 := limiter.GetLimiter(ip2)

	if limiter1 == limiter3 {
		t.Error("Expected different limiters for different IPs")
	}
}

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	if config == nil {
		t.Fatal("Expected non-nil config")
	}

	if !config.EnableRateLimit {
		t.Error("Expected rate limiting to be enabled by default")
	}

	if config.RateLimitPerSecond != 10.0 {
		t.Errorf("Expected rate limit per second to be 10.0, got %f", config.RateLimitPerSecond)
	}

	if config.RateLimitBurst != 20 {
		t.Errorf("Expected rate limit burst to be 20, got %d", config.RateLimitBurst)
	}

	if !config.EnableCORS {
		t.Error("Expected CORS to be enabled by default")
	}

	if !config.EnableSecurityHeaders {
		t.Error("Expected security headers to be enabled by default")
	}

	if config.MaxRequestSize != 10<<20 {
		t.Errorf("Expected max request size to be 10MB, got %d", config.MaxRequestSize)
	}

	if !config.EnableRequestID {
		t.Error("Expected request ID to be enabled by default")
	}
}

func TestSetupSecurityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Test with nil config (should use defaults)
	SetupSecurityMiddleware(router, nil)

	// Test with custom config
	config := &SecurityConfig{
		EnableRateLimit:       true,
		RateLimitPerSecond:    5.0,
		RateLimitBurst:        10,
		EnableCORS:            true,
		AllowedOrigins:        []string{"http://localhost:3000"},
		EnableSecurityHeaders: true,
		MaxRequestSize:        1024,
		EnableRequestID:       true,
	}

	router2 := gin.New()
	SetupSecurityMiddleware(router2, config)

	// Test with disabled features
	config2 := &SecurityConfig{
		EnableRateLimit:       false,
		EnableCORS:            false,
		EnableSecurityHeaders: false,
		EnableRequestID:       false,
		MaxRequestSize:        1024,
	}

	router3 := gin.New()
	SetupSecurityMiddleware(router3, config2)
}

func TestContentSecurityPolicyAllowsMapAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupSecurityMiddleware(router, nil)

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "https://unpkg.com") {
		t.Errorf("Expected CSP to allow unpkg, got %s", csp)
	}
	if !strings.Contains(csp, "tile.openstreetmap.org") {
		t.Errorf("Expected CSP to allow OSM tiles, got %s", csp)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	limiter := NewRateLimiter(rate.Limit(10), 5)
	router.Use(RateLimitMiddleware(limiter))

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Test successful request
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.1")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestRateLimitMiddlewareBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// 1 request per second with a burst of 2
	limiter := NewRateLimiter(rate.Limit(1), 2)
	router.Use(RateLimitMiddleware(limiter))

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var lastCode int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.9")
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after burst, got %d", lastCode)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(RequestSizeMiddleware(100)) // 100 bytes limit

	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Test request within size limit
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/test", nil)
	req.ContentLength = 50
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	// Test request exceeding size limit
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/test", nil)
	req.ContentLength = 150
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}

	// Test request with no content length
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/test", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for request with no content length, got %d", w.Code)
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(InputValidationMiddleware())

	router.GET("/articles/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/articles", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Test valid article id
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/articles/porto-2023", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	// Test invalid article id
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/articles/bad@id", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	// Test valid filter parameters
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/articles?country=Portugal&year=2023&q=wine", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	// Test oversized search parameter
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/articles?q="+strings.Repeat("a", 201), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for oversized q, got %d", w.Code)
	}
}

func TestValidateFilterQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/test", func(c *gin.Context) {
		err := validateFilterQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"no parameters", "", http.StatusOK},
		{"all filters", "?country=Portugal&year=2023&q=wine", http.StatusOK},
		{"unmatched year is not rejected", "?year=never", http.StatusOK},
		{"search with spaces", "?q=port+wine", http.StatusOK},
		{"oversized country", "?country=" + strings.Repeat("x", 101), http.StatusBadRequest},
		{"oversized year", "?year=" + strings.Repeat("9", 11), http.StatusBadRequest},
		{"oversized search", "?q=" + strings.Repeat("x", 201), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test"+tt.query, nil)
			router.ServeHTTP(w, req)
			if w.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var captured string
	router.GET("/test", func(c *gin.Context) {
		captured = getClientIP(c)
		c.JSON(http.StatusOK, gin.H{"ip": captured})
	})

	// Test X-Forwarded-For header with multiple IPs
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1")
	router.ServeHTTP(w, req)

	if captured != "192.168.1.1" {
		t.Errorf("Expected first forwarded IP, got %s", captured)
	}

	// Test X-Real-IP header
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Real-IP", "192.168.1.2")
	router.ServeHTTP(w, req)

	if captured != "192.168.1.2" {
		t.Errorf("Expected X-Real-IP value, got %s", captured)
	}
}

func TestIsValidArticleID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"porto-2023", true},
		{"kyoto_2022", true},
		{"Article123", true},
		{"a", true},
		{"", false},
		{"bad@id", false},
		{"id with spaces", false},
		{"id/with/slashes", false},
		{strings.Repeat("a", 101), false},
	}

	for _, tt := range tests {
		if got := isValidArticleID(tt.id); got != tt.expected {
			t.Errorf("Expected isValidArticleID(%q) = %v, got %v", tt.id, tt.expected, got)
		}
	}
}
