package boundary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Index holds country outline polygons keyed by name. Lookups are exact
// string matches against the feature's "name" and "name_en" properties;
// a dataset country spelled differently from the boundary file simply
// gets no outline, which downstream code treats as "do not clip".
type Index struct {
	byName map[string]orb.MultiPolygon
	count  int
}

// Load reads a GeoJSON FeatureCollection of country outlines from a local
// file or an HTTP(S) URL and indexes it. Boundary data is an enhancement:
// callers are expected to continue without an Index when Load fails.
func Load(ctx context.Context, source string, timeout time.Duration) (*Index, error) {
	data, err := fetch(ctx, source, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundaries from %s: %w", source, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boundaries: %w", err)
	}

	ix := &Index{byName: make(map[string]orb.MultiPolygon)}
	for _, f := range fc.Features {
		mp, ok := asMultiPolygon(f.Geometry)
		if !ok {
			continue
		}

		ix.count++
		for _, key := range []string{"name", "name_en"} {
			name, _ := f.Properties[key].(string)
			if name == "" {
				continue
			}
			if _, exists := ix.byName[name]; !exists {
				ix.byName[name] = mp
			}
		}
	}

	if ix.count == 0 {
		return nil, fmt.Errorf("no polygon features in %s", source)
	}

	return ix, nil
}

// Lookup returns the outline for a country name. Safe on a nil Index.
func (ix *Index) Lookup(country string) (orb.MultiPolygon, bool) {
	if ix == nil {
		return nil, false
	}
	mp, ok := ix.byName[country]
	return mp, ok
}

// Count reports how many polygon features were indexed.
func (ix *Index) Count() int {
	if ix == nil {
		return 0
	}
	return ix.count
}

func asMultiPolygon(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, true
	case orb.MultiPolygon:
		return geom, true
	default:
		return nil, false
	}
}

func fetch(ctx context.Context, source string, timeout time.Duration) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: timeout}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(source)
}
