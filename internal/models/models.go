package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LatLng is a geographic coordinate. The dataset stores coordinates as a
// two-element [latitude, longitude] array, so the JSON codec preserves that
// wire shape. GeoJSON output uses the opposite (lon, lat) ordering; that
// conversion belongs to the atlas package, not here.
type LatLng struct {
	Lat float64
	Lng float64
}

func (ll LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{ll.Lat, ll.Lng})
}

func (ll *LatLng) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("coordinates must be a [lat, lon] array: %w", err)
	}
	if len(coords) < 2 {
		return fmt.Errorf("coordinates must have 2 elements, got %d", len(coords))
	}
	ll.Lat = coords[0]
	ll.Lng = coords[1]
	return nil
}

// Article represents a single travel story from the dataset.
// Articles are immutable once loaded.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Coordinates LatLng   `json:"coordinates"`
	Date        string   `json:"date"`
	Year        int      `json:"year,omitempty"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"`
	Content     string   `json:"content"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Mood        string   `json:"mood,omitempty"`
}

// YearString returns the article year in the textual form used by the year
// filter and the dropdown options.
func (a Article) YearString() string {
	return strconv.Itoa(a.Year)
}

// Metadata holds the blog header fields from the dataset.
type Metadata struct {
	BlogTitle string `json:"blogTitle"`
	Tagline   string `json:"tagline"`
}

// MapSettings holds the display settings supplied by the dataset.
type MapSettings struct {
	ColorScheme map[string]string `json:"colorScheme"`
}

// Dataset is the parsed article dataset document.
type Dataset struct {
	Metadata    Metadata    `json:"metadata"`
	MapSettings MapSettings `json:"mapSettings"`
	Articles    []Article   `json:"articles"`
}

// Filter holds the three user-facing filter values. The zero value matches
// every article; filters combine with AND semantics.
type Filter struct {
	Country string `json:"country,omitempty"`
	Year    string `json:"year,omitempty"`
	Search  string `json:"search,omitempty"`
}

// IsZero reports whether no filter value is set.
func (f Filter) IsZero() bool {
	return f.Country == "" && f.Year == "" && f.Search == ""
}

// CityAggregate groups the filtered articles of one city. Aggregates are
// derived per render and never persisted.
type CityAggregate struct {
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Coordinate LatLng    `json:"coordinate"`
	Articles   []Article `json:"-"`
	TotalWords int       `json:"totalWords"`
}

// Key returns the (city, country) grouping key.
func (c CityAggregate) Key() string {
	return c.City + "|" + c.Country
}

// ArticleCount returns the number of constituent articles.
func (c CityAggregate) ArticleCount() int {
	return len(c.Articles)
}

// ArticleCard is the display form of an article: formatted date, stable
// anchor for cross-component addressing, and a plain-text excerpt. Optional
// fields are omitted from JSON when absent.
type ArticleCard struct {
	ID          string   `json:"id"`
	Anchor      string   `json:"anchor"`
	Title       string   `json:"title"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Coordinates LatLng   `json:"coordinates"`
	Date        string   `json:"date"`
	DisplayDate string   `json:"displayDate"`
	Year        int      `json:"year"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Mood        string   `json:"mood,omitempty"`
}

// LegendEntry is one row of the map legend.
type LegendEntry struct {
	Country      string `json:"country"`
	Color        string `json:"color"`
	ArticleCount int    `json:"articleCount"`
}

// Viewport describes the initial map view for the current article set.
type Viewport struct {
	Center    LatLng `json:"center"`
	Zoom      int    `json:"zoom"`
	MinZoom   int    `json:"minZoom"`
	MaxZoom   int    `json:"maxZoom"`
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}
