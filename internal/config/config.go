package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SecurityConfig represents security configuration
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

// BlobConfig controls the generated city blob geometry
type BlobConfig struct {
	ScaleKm     float64
	MinRadiusKm float64
	Vertices    int
	JitterMin   float64
	JitterMax   float64
}

// MapConfig controls the initial map view and country coloring
type MapConfig struct {
	MinZoom      int
	MaxZoom      int
	DefaultZoom  int
	DefaultColor string
	Markers      bool
}

type Config struct {
	Port           int
	DatasetSource  string
	BoundarySource string
	SiteURL        string
	CacheTTL       time.Duration
	FetchTimeout   time.Duration
	EnableSPA      bool
	EnableSwagger  bool
	Blob           BlobConfig
	Map            MapConfig
	Security       SecurityConfig
}

func Load() *Config {
	port := getEnvAsInt("PORT", 8080)
	datasetSource := getEnv("DATASET_SOURCE", "./data/articles.json")
	boundarySource := getEnv("BOUNDARY_SOURCE", "./data/countries.geojson")
	siteURL := getEnv("SITE_URL", "http://localhost:8080")
	cacheTTL := getEnvAsDuration("CACHE_TTL", 15*time.Minute)
	fetchTimeout := getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second)
	enableSPA := getEnvAsBool("ENABLE_SPA", true)
	enableSwagger := getEnvAsBool("ENABLE_SWAGGER", true)

	// Load security configuration
	security := loadSecurityConfig()

	return &Config{
		Port:           port,
		DatasetSource:  datasetSource,
		BoundarySource: boundarySource,
		SiteURL:        strings.TrimRight(siteURL, "/"),
		CacheTTL:       cacheTTL,
		FetchTimeout:   fetchTimeout,
		EnableSPA:      enableSPA,
		EnableSwagger:  enableSwagger,
		Blob:           loadBlobConfig(),
		Map:            loadMapConfig(),
		Security:       security,
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 10<<20), // 10MB
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

func loadBlobConfig() BlobConfig {
	cfg := BlobConfig{
		ScaleKm:     getEnvAsFloat("BLOB_SCALE_KM", 1.2),
		MinRadiusKm: getEnvAsFloat("BLOB_MIN_RADIUS_KM", 14.0),
		Vertices:    getEnvAsInt("BLOB_VERTICES", 10),
		JitterMin:   getEnvAsFloat("BLOB_JITTER_MIN", 0.5),
		JitterMax:   getEnvAsFloat("BLOB_JITTER_MAX", 1.5),
	}

	// Out-of-range values fall back to defaults rather than failing startup.
	if cfg.Vertices < 8 || cfg.Vertices > 14 {
		cfg.Vertices = 10
	}
	if cfg.ScaleKm <= 0 {
		cfg.ScaleKm = 1.2
	}
	if cfg.MinRadiusKm <= 0 {
		cfg.MinRadiusKm = 14.0
	}
	if cfg.JitterMin <= 0 || cfg.JitterMax <= cfg.JitterMin {
		cfg.JitterMin = 0.5
		cfg.JitterMax = 1.5
	}

	return cfg
}

func loadMapConfig() MapConfig {
	cfg := MapConfig{
		MinZoom:      getEnvAsInt("MAP_MIN_ZOOM", 2),
		MaxZoom:      getEnvAsInt("MAP_MAX_ZOOM", 18),
		DefaultZoom:  getEnvAsInt("MAP_DEFAULT_ZOOM", 3),
		DefaultColor: getEnv("MAP_DEFAULT_COLOR", "#888888"),
		Markers:      getEnvAsBool("ENABLE_MARKERS", false),
	}

	if cfg.MinZoom < 0 || cfg.MaxZoom <= cfg.MinZoom {
		cfg.MinZoom = 2
		cfg.MaxZoom = 18
	}
	if cfg.DefaultZoom < cfg.MinZoom {
		cfg.DefaultZoom = cfg.MinZoom
	}
	if cfg.DefaultZoom > cfg.MaxZoom {
		cfg.DefaultZoom = cfg.MaxZoom
	}

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		origins := strings.Split(val, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return defaultVal
}
