package atlas

import (
	"blotmap/internal/models"
)

// Aggregate groups articles into one entry per (city, country) pair,
// summing word counts. The first article seen for a city supplies its
// coordinate, and cities keep the order of their first appearance so
// repeated renders of the same input stay stable.
func Aggregate(articles []models.Article) []models.CityAggregate {
	index := make(map[string]int)
	aggs := []models.CityAggregate{}

	for _, a := range articles {
		key := models.CityAggregate{City: a.City, Country: a.Country}.Key()

		i, seen := index[key]
		if !seen {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, models.CityAggregate{
				City:       a.City,
				Country:    a.Country,
				Coordinate: a.Coordinates,
			})
		}

		aggs[i].Articles = append(aggs[i].Articles, a)
		aggs[i].TotalWords += a.WordCount
	}

	return aggs
}
