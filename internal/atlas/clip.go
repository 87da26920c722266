package atlas

import (
	"log"

	"github.com/engelsjk/polygol"
	"github.com/paulmach/orb"

	"blotmap/internal/boundary"
)

// Clipper trims a blob ring to a country outline. Implementations never
// fail: the caller always gets a drawable geometry back.
type Clipper interface {
	Clip(ring orb.Ring, country string) (orb.MultiPolygon, bool)
}

// BoundaryClipper clips blobs against loaded country outlines. A nil
// index is valid and disables clipping entirely.
type BoundaryClipper struct {
	index *boundary.Index
}

func NewBoundaryClipper(index *boundary.Index) *BoundaryClipper {
	return &BoundaryClipper{index: index}
}

// Enabled reports whether any outlines are available to clip against.
func (c *BoundaryClipper) Enabled() bool {
	return c.index.Count() > 0
}

// Clip intersects the ring with the country's outline. On any failure,
// including a missing outline, an empty intersection, an error or a panic
// inside the clipping library, the unclipped blob is returned with
// clipped=false.
func (c *BoundaryClipper) Clip(ring orb.Ring, country string) (result orb.MultiPolygon, clipped bool) {
	result = orb.MultiPolygon{{ring}}
	clipped = false

	outline, ok := c.index.Lookup(country)
	if !ok {
		return result, false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: boundary clip panicked for %s: %v", country, r)
			result = orb.MultiPolygon{{ring}}
			clipped = false
		}
	}()

	inter, err := polygol.Intersection(geomFromRing(ring), geomFromMultiPolygon(outline))
	if err != nil {
		log.Printf("Warning: boundary clip failed for %s: %v", country, err)
		return result, false
	}
	if geomIsEmpty(inter) {
		return result, false
	}

	return multiPolygonFromGeom(inter), true
}

// polygol treats geometries as [poly][ring][point][xy] in the same
// (lon, lat) order orb uses, so the conversions are purely structural.

func geomFromRing(ring orb.Ring) [][][][]float64 {
	points := make([][]float64, len(ring))
	for i, p := range ring {
		points[i] = []float64{p[0], p[1]}
	}
	return [][][][]float64{{points}}
}

func geomFromMultiPolygon(mp orb.MultiPolygon) [][][][]float64 {
	geom := make([][][][]float64, len(mp))
	for i, poly := range mp {
		rings := make([][][]float64, len(poly))
		for j, ring := range poly {
			points := make([][]float64, len(ring))
			for k, p := range ring {
				points[k] = []float64{p[0], p[1]}
			}
			rings[j] = points
		}
		geom[i] = rings
	}
	return geom
}

func multiPolygonFromGeom(geom [][][][]float64) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, len(geom))
	for _, rings := range geom {
		poly := make(orb.Polygon, 0, len(rings))
		for _, points := range rings {
			ring := make(orb.Ring, 0, len(points))
			for _, p := range points {
				if len(p) < 2 {
					continue
				}
				ring = append(ring, orb.Point{p[0], p[1]})
			}
			if len(ring) > 0 {
				poly = append(poly, ring)
			}
		}
		if len(poly) > 0 {
			mp = append(mp, poly)
		}
	}
	return mp
}

func geomIsEmpty(geom [][][][]float64) bool {
	for _, rings := range geom {
		for _, points := range rings {
			if len(points) > 0 {
				return false
			}
		}
	}
	return true
}
