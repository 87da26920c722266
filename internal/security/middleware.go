package security

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// contentSecurityPolicy allows the map page its two external origins:
// Leaflet assets from unpkg and tiles from OpenStreetMap.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline' https://unpkg.com; " +
	"img-src 'self' data: https://unpkg.com https://*.tile.openstreetmap.org; " +
	"connect-src 'self'"

// RateLimiter stores rate limit information per IP
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	r        rate.Limit
	b        int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the rate limiter for the given key (IP address)
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.limiters[key] = limiter
	}

	return limiter
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

// DefaultSecurityConfig returns default security configuration
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		EnableRateLimit:       true,
		RateLimitPerSecond:    10.0, // 10 requests per second
		RateLimitBurst:        20,   // Allow bursts up to 20 requests
		EnableCORS:            true,
		AllowedOrigins:        []string{"*"}, // Allow all origins by default
		EnableSecurityHeaders: true,
		MaxRequestSize:        10 << 20, // 10MB
		EnableRequestID:       true,
	}
}

// SetupSecurityMiddleware configures all security middleware
func SetupSecurityMiddleware(router *gin.Engine, config *SecurityConfig) {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	// Add request ID middleware
	if config.EnableRequestID {
		router.Use(requestid.New())
	}

	// Add security headers middleware
	if config.EnableSecurityHeaders {
		router.Use(secure.New(secure.Config{
			SSLRedirect:           false, // Set to true in production with HTTPS
			STSSeconds:            31536000,
			STSIncludeSubdomains:  true,
			FrameDeny:             true,
			ContentTypeNosniff:    true,
			BrowserXssFilter:      true,
			ContentSecurityPolicy: contentSecurityPolicy,
			ReferrerPolicy:        "strict-origin-when-cross-origin",
		}))
	}

	// Add CORS middleware
	if config.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = config.AllowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
		corsConfig.ExposeHeaders = []string{"X-Request-ID"}
		router.Use(cors.New(corsConfig))
	}

	// Add rate limiting middleware
	if config.EnableRateLimit {
		limiter := NewRateLimiter(rate.Limit(config.RateLimitPerSecond), config.RateLimitBurst)
		router.Use(RateLimitMiddleware(limiter))
	}

	// Add request size limiting middleware
	router.Use(RequestSizeMiddleware(config.MaxRequestSize))

	// Add input validation middleware
	router.Use(InputValidationMiddleware())

	// Add logging middleware
	router.Use(SecurityLoggingMiddleware())
}

// RateLimitMiddleware implements rate limiting per IP
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		limiter := limiter.GetLimiter(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestSizeMiddleware limits request body size
func RequestSizeMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Request too large",
				"message": "Request body exceeds maximum allowed size",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// InputValidationMiddleware validates and sanitizes input
func InputValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Validate filter query parameters
		if err := validateFilterQuery(c); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid query parameters",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		// Validate path parameters
		if err := validatePathParams(c); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid path parameters",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SecurityLoggingMiddleware logs security-relevant information
func SecurityLoggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		// Log security-relevant information
		securityInfo := []string{
			"ip=" + param.ClientIP,
			"method=" + param.Method,
			"path=" + param.Path,
			"status=" + fmt.Sprintf("%d", param.StatusCode),
			"latency=" + param.Latency.String(),
			"user_agent=" + param.Request.UserAgent(),
		}

		if param.StatusCode >= 400 {
			// Log errors with more detail
			securityInfo = append(securityInfo, "error=true")
		}

		return strings.Join(securityInfo, " ") + "\n"
	})
}

// validateFilterQuery bounds the three filter parameters. Values that are
// merely unmatched are not rejected here; a filter that hits nothing is a
// valid empty result, not an error.
func validateFilterQuery(c *gin.Context) error {
	if country := c.Query("country"); len(country) > 100 {
		return fmt.Errorf("country parameter too long: maximum 100 characters")
	}

	if year := c.Query("year"); len(year) > 10 {
		return fmt.Errorf("year parameter too long: maximum 10 characters")
	}

	if q := c.Query("q"); len(q) > 200 {
		return fmt.Errorf("q parameter too long: maximum 200 characters")
	}

	return nil
}

// validatePathParams validates path parameters
func validatePathParams(c *gin.Context) error {
	// Validate article id parameter
	if id := c.Param("id"); id != "" {
		if !isValidArticleID(id) {
			return fmt.Errorf("invalid article id: must contain only alphanumeric characters, hyphens and underscores")
		}
	}

	return nil
}

// getClientIP extracts the real client IP address
func getClientIP(c *gin.Context) string {
	// Check for forwarded headers (when behind proxy/load balancer)
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		if commaIndex := strings.Index(ip, ","); commaIndex != -1 {
			return strings.TrimSpace(ip[:commaIndex])
		}
		return strings.TrimSpace(ip)
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := c.GetHeader("X-Client-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	// Fallback to remote address
	return c.ClientIP()
}

// isValidArticleID checks if an article id is a well-formed slug
func isValidArticleID(s string) bool {
	if s == "" || len(s) > 100 {
		return false
	}

	for _, char := range s {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_') {
			return false
		}
	}

	return true
}
