package atlas

import (
	"sort"

	"github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"blotmap/internal/cards"
	"blotmap/internal/config"
	"blotmap/internal/models"
)

// geohashPrecision gives city features stable ids of about a city block,
// enough to tell two nearby cities apart.
const geohashPrecision = 8

// MapView is the full payload one map render needs: blob geometry, the
// country legend and the viewport to frame it all.
type MapView struct {
	Blobs    *geojson.FeatureCollection `json:"blobs"`
	Legend   []models.LegendEntry       `json:"legend"`
	Viewport models.Viewport            `json:"viewport"`
	Clipped  bool                       `json:"clipped"`
	Cities   int                        `json:"cities"`
}

// Renderer turns a filtered article list into a MapView. Each call starts
// from scratch; nothing carries over between renders.
type Renderer struct {
	gen     *Generator
	clipper Clipper
	mapCfg  config.MapConfig
}

func NewRenderer(gen *Generator, clipper Clipper, mapCfg config.MapConfig) *Renderer {
	return &Renderer{gen: gen, clipper: clipper, mapCfg: mapCfg}
}

// Render aggregates the articles by city and produces one blob feature per
// city, plus the legend and viewport for the set. colors maps countries to
// fill colors; countries it misses get the configured default.
func (r *Renderer) Render(articles []models.Article, colors map[string]string) *MapView {
	aggs := Aggregate(articles)

	fc := geojson.NewFeatureCollection()
	countryCounts := make(map[string]int)
	rect := s2.EmptyRect()
	anyClipped := false

	for _, agg := range aggs {
		ring := r.gen.Blob(agg.Coordinate, agg.TotalWords)

		geom := orb.MultiPolygon{{ring}}
		clipped := false
		if r.clipper != nil {
			geom, clipped = r.clipper.Clip(ring, agg.Country)
		}
		if clipped {
			anyClipped = true
		}

		id := geohash.EncodeWithPrecision(agg.Coordinate.Lat, agg.Coordinate.Lng, geohashPrecision)
		props := geojson.Properties{
			"city":         agg.City,
			"country":      agg.Country,
			"color":        r.colorFor(agg.Country, colors),
			"totalWords":   agg.TotalWords,
			"articleCount": agg.ArticleCount(),
			"radiusKm":     r.gen.RadiusKm(agg.TotalWords),
			"clipped":      clipped,
			"center":       agg.Coordinate,
			"articles":     articleRefs(agg.Articles),
		}

		f := geojson.NewFeature(geom)
		f.ID = id
		f.Properties = props
		fc.Append(f)

		// Optional point marker at the city center, same identity as the blob.
		if r.mapCfg.Markers {
			m := geojson.NewFeature(orb.Point{agg.Coordinate.Lng, agg.Coordinate.Lat})
			m.ID = id + "-pt"
			m.Properties = props
			fc.Append(m)
		}

		countryCounts[agg.Country] += agg.ArticleCount()
		rect = rect.AddPoint(s2.LatLngFromDegrees(agg.Coordinate.Lat, agg.Coordinate.Lng))
	}

	return &MapView{
		Blobs:    fc,
		Legend:   r.legend(countryCounts, colors),
		Viewport: r.viewport(rect),
		Clipped:  anyClipped,
		Cities:   len(aggs),
	}
}

func (r *Renderer) colorFor(country string, colors map[string]string) string {
	if color, ok := colors[country]; ok && color != "" {
		return color
	}
	return r.mapCfg.DefaultColor
}

// articleRefs carries just enough per article for the popup: title to show
// and anchor to scroll to.
func articleRefs(articles []models.Article) []map[string]string {
	refs := make([]map[string]string, len(articles))
	for i, a := range articles {
		refs[i] = map[string]string{
			"id":     a.ID,
			"title":  a.Title,
			"anchor": cards.Anchor(a.ID),
		}
	}
	return refs
}

func (r *Renderer) legend(countryCounts map[string]int, colors map[string]string) []models.LegendEntry {
	countries := make([]string, 0, len(countryCounts))
	for country := range countryCounts {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	legend := make([]models.LegendEntry, len(countries))
	for i, country := range countries {
		legend[i] = models.LegendEntry{
			Country:      country,
			Color:        r.colorFor(country, colors),
			ArticleCount: countryCounts[country],
		}
	}
	return legend
}

// viewport frames the rendered cities. An empty render falls back to a
// world view.
func (r *Renderer) viewport(rect s2.Rect) models.Viewport {
	vp := models.Viewport{
		Zoom:    r.mapCfg.DefaultZoom,
		MinZoom: r.mapCfg.MinZoom,
		MaxZoom: r.mapCfg.MaxZoom,
	}

	if rect.IsEmpty() {
		vp.Center = models.LatLng{Lat: 20, Lng: 0}
		vp.Zoom = r.mapCfg.MinZoom
		vp.SouthWest = models.LatLng{Lat: -60, Lng: -180}
		vp.NorthEast = models.LatLng{Lat: 75, Lng: 180}
		return vp
	}

	center := rect.Center()
	vp.Center = models.LatLng{Lat: center.Lat.Degrees(), Lng: center.Lng.Degrees()}
	vp.SouthWest = models.LatLng{Lat: rect.Lo().Lat.Degrees(), Lng: rect.Lo().Lng.Degrees()}
	vp.NorthEast = models.LatLng{Lat: rect.Hi().Lat.Degrees(), Lng: rect.Hi().Lng.Degrees()}
	return vp
}
