package atlas

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"blotmap/internal/config"
	"blotmap/internal/models"
)

// kmPerDegree is the approximate length of one degree of latitude.
// Longitude degrees shrink with cos(latitude); toPoint applies that.
const kmPerDegree = 111.32

// Generator produces the irregular polygon drawn around a city. Every call
// re-rolls the jitter, so the same city gets a freshly shaped blob on each
// render while its area still tracks the city's total word count.
type Generator struct {
	cfg config.BlobConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator builds a Generator. Pass a seeded rand.Rand to make the
// jitter reproducible; a nil rng gets a time-based seed.
func NewGenerator(cfg config.BlobConfig, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// RadiusKm returns the base blob radius for a word total: square root
// scaling dampens large cities, and the floor keeps single short articles
// visible at country zoom.
func (g *Generator) RadiusKm(totalWords int) float64 {
	r := math.Sqrt(float64(totalWords)) * g.cfg.ScaleKm
	if r < g.cfg.MinRadiusKm {
		r = g.cfg.MinRadiusKm
	}
	return r
}

// Blob generates the closed ring around a city center. Vertices sit at
// equal angular steps with each one's distance jittered independently
// within the configured window.
func (g *Generator) Blob(center models.LatLng, totalWords int) orb.Ring {
	n := g.cfg.Vertices
	radius := g.RadiusKm(totalWords)
	jitters := g.drawJitters(n)

	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, toPoint(center, radius*jitters[i], angle))
	}

	// Explicit closure: the first vertex repeats at the end
	ring = append(ring, ring[0])
	return ring
}

func (g *Generator) drawJitters(n int) []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	window := g.cfg.JitterMax - g.cfg.JitterMin
	jitters := make([]float64, n)
	for i := range jitters {
		jitters[i] = g.cfg.JitterMin + g.rng.Float64()*window
	}
	return jitters
}

// toPoint offsets a center by distanceKm at the given angle and returns it
// in the (lon, lat) axis order all downstream geometry uses. The dataset's
// [lat, lon] ordering is models.LatLng's concern; from here on everything
// is GeoJSON-ordered.
func toPoint(center models.LatLng, distanceKm, angle float64) orb.Point {
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if math.Abs(cosLat) < 0.01 {
		// Near the poles a degree of longitude collapses; cap the
		// stretch so blobs stay bounded.
		cosLat = math.Copysign(0.01, cosLat)
	}

	lat := center.Lat + (distanceKm/kmPerDegree)*math.Sin(angle)
	lng := center.Lng + (distanceKm/(kmPerDegree*cosLat))*math.Cos(angle)

	return orb.Point{lng, lat}
}
