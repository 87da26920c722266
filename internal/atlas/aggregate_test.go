package atlas

import (
	"testing"

	"blotmap/internal/models"
)

func TestAggregateGroupsByCityAndCountry(t *testing.T) {
	articles := []models.Article{
		{ID: "porto-1", City: "Porto", Country: "Portugal", Coordinates: models.LatLng{Lat: 41.1579, Lng: -8.6291}, WordCount: 500},
		{ID: "kyoto-1", City: "Kyoto", Country: "Japan", Coordinates: models.LatLng{Lat: 35.0116, Lng: 135.7681}, WordCount: 900},
		{ID: "porto-2", City: "Porto", Country: "Portugal", Coordinates: models.LatLng{Lat: 41.16, Lng: -8.63}, WordCount: 700},
	}

	aggs := Aggregate(articles)

	if len(aggs) != 2 {
		t.Fatalf("Expected 2 aggregates, got %d", len(aggs))
	}

	portoAgg := aggs[0]
	if portoAgg.City != "Porto" {
		t.Errorf("Expected first aggregate Porto, got %s", portoAgg.City)
	}
	if portoAgg.TotalWords != 1200 {
		t.Errorf("Expected 1200 total words, got %d", portoAgg.TotalWords)
	}
	if portoAgg.ArticleCount() != 2 {
		t.Errorf("Expected 2 articles, got %d", portoAgg.ArticleCount())
	}

	// The first article seen supplies the coordinate
	if portoAgg.Coordinate.Lat != 41.1579 {
		t.Errorf("Expected first article's latitude, got %v", portoAgg.Coordinate.Lat)
	}

	kyotoAgg := aggs[1]
	if kyotoAgg.TotalWords != 900 {
		t.Errorf("Expected 900 total words for Kyoto, got %d", kyotoAgg.TotalWords)
	}
}

func TestAggregateSeparatesSameCityNameAcrossCountries(t *testing.T) {
	articles := []models.Article{
		{ID: "pt", City: "Porto", Country: "Portugal", WordCount: 100},
		{ID: "br", City: "Porto", Country: "Brazil", WordCount: 200},
	}

	aggs := Aggregate(articles)

	if len(aggs) != 2 {
		t.Fatalf("Expected 2 aggregates for same-named cities, got %d", len(aggs))
	}
	if aggs[0].Country == aggs[1].Country {
		t.Error("Expected distinct countries in aggregates")
	}
}

func TestAggregatePreservesFirstAppearanceOrder(t *testing.T) {
	articles := []models.Article{
		{ID: "1", City: "Tokyo", Country: "Japan", WordCount: 1},
		{ID: "2", City: "Lisbon", Country: "Portugal", WordCount: 1},
		{ID: "3", City: "Tokyo", Country: "Japan", WordCount: 1},
		{ID: "4", City: "Porto", Country: "Portugal", WordCount: 1},
	}

	aggs := Aggregate(articles)

	expected := []string{"Tokyo", "Lisbon", "Porto"}
	if len(aggs) != len(expected) {
		t.Fatalf("Expected %d aggregates, got %d", len(expected), len(aggs))
	}
	for i, city := range expected {
		if aggs[i].City != city {
			t.Errorf("Expected aggregate %d to be %s, got %s", i, city, aggs[i].City)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	aggs := Aggregate(nil)
	if len(aggs) != 0 {
		t.Errorf("Expected no aggregates, got %d", len(aggs))
	}
}
