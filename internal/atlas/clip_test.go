package atlas

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blotmap/internal/boundary"
	"blotmap/internal/models"
)

// A rectangle loosely around mainland Portugal.
const portugalBoundary = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "Portugal", "name_en": "Portugal"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-9.5, 36.9], [-6.2, 36.9], [-6.2, 42.2], [-9.5, 42.2], [-9.5, 36.9]]]
			}
		}
	]
}`

func loadTestIndex(t *testing.T) *boundary.Index {
	t.Helper()

	path := filepath.Join(t.TempDir(), "countries.geojson")
	if err := os.WriteFile(path, []byte(portugalBoundary), 0644); err != nil {
		t.Fatalf("Failed to write boundaries: %v", err)
	}

	ix, err := boundary.Load(context.Background(), path, 5*time.Second)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return ix
}

func TestClipInsideCountryKeepsBlob(t *testing.T) {
	clipper := NewBoundaryClipper(loadTestIndex(t))
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))

	// Coimbra sits well inside the rectangle
	ring := gen.Blob(models.LatLng{Lat: 40.2033, Lng: -8.4103}, 400)

	result, clipped := clipper.Clip(ring, "Portugal")
	if !clipped {
		t.Fatal("Expected clip to apply inside the country")
	}
	if len(result) == 0 || len(result[0]) == 0 || len(result[0][0]) == 0 {
		t.Fatal("Expected non-empty clipped geometry")
	}
}

func TestClipCutsAtBorder(t *testing.T) {
	clipper := NewBoundaryClipper(loadTestIndex(t))
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))

	// Close enough to the western edge that the blob must cross it
	ring := gen.Blob(models.LatLng{Lat: 40.0, Lng: -9.45}, 1200)

	result, clipped := clipper.Clip(ring, "Portugal")
	if !clipped {
		t.Fatal("Expected clip to apply at the border")
	}

	for _, poly := range result {
		for _, r := range poly {
			for _, p := range r {
				if p[0] < -9.5-1e-6 {
					t.Fatalf("Expected clipped geometry to stay east of -9.5, got lon %v", p[0])
				}
			}
		}
	}
}

func TestClipMissingCountryReturnsUnclipped(t *testing.T) {
	clipper := NewBoundaryClipper(loadTestIndex(t))
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))

	ring := gen.Blob(models.LatLng{Lat: 35.0116, Lng: 135.7681}, 900)

	result, clipped := clipper.Clip(ring, "Japan")
	if clipped {
		t.Error("Expected no clipping without an outline")
	}
	if len(result) != 1 || len(result[0]) != 1 || len(result[0][0]) != len(ring) {
		t.Error("Expected the original ring back")
	}
}

func TestClipEmptyIntersectionFallsBack(t *testing.T) {
	clipper := NewBoundaryClipper(loadTestIndex(t))
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))

	// Mid-Atlantic, nowhere near the outline
	ring := gen.Blob(models.LatLng{Lat: 40.0, Lng: -30.0}, 1200)

	result, clipped := clipper.Clip(ring, "Portugal")
	if clipped {
		t.Error("Expected empty intersection to fall back to the unclipped blob")
	}
	if len(result) != 1 || len(result[0]) != 1 || len(result[0][0]) != len(ring) {
		t.Error("Expected the original ring back")
	}
}

func TestClipWithNilIndex(t *testing.T) {
	clipper := NewBoundaryClipper(nil)
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))

	if clipper.Enabled() {
		t.Error("Expected clipping disabled without an index")
	}

	ring := gen.Blob(porto, 1200)
	result, clipped := clipper.Clip(ring, "Portugal")
	if clipped {
		t.Error("Expected no clipping with a nil index")
	}
	if len(result) != 1 || len(result[0][0]) != len(ring) {
		t.Error("Expected the original ring back")
	}
}

func TestClipperEnabled(t *testing.T) {
	if !NewBoundaryClipper(loadTestIndex(t)).Enabled() {
		t.Error("Expected clipper with outlines to report enabled")
	}
}

func TestGeomRoundTrip(t *testing.T) {
	gen := NewGenerator(testBlobConfig, rand.New(rand.NewSource(3)))
	ring := gen.Blob(porto, 1200)

	geom := geomFromRing(ring)
	back := multiPolygonFromGeom(geom)

	if len(back) != 1 || len(back[0]) != 1 {
		t.Fatalf("Expected one polygon with one ring, got %d polygons", len(back))
	}
	if len(back[0][0]) != len(ring) {
		t.Fatalf("Expected %d points, got %d", len(ring), len(back[0][0]))
	}
	for i, p := range back[0][0] {
		if p != ring[i] {
			t.Errorf("Expected point %d to round-trip, got %v want %v", i, p, ring[i])
		}
	}
}

func TestGeomIsEmpty(t *testing.T) {
	if !geomIsEmpty(nil) {
		t.Error("Expected nil geom to be empty")
	}
	if !geomIsEmpty([][][][]float64{}) {
		t.Error("Expected zero-length geom to be empty")
	}
	if geomIsEmpty([][][][]float64{{{{1, 2}}}}) {
		t.Error("Expected geom with a point to be non-empty")
	}
}
