package library

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"blotmap/internal/cache"
	"blotmap/internal/dataset"
	"blotmap/internal/models"
)

// Library owns the loaded dataset and answers every filtered view of it.
// The dataset is replaced wholesale on refresh; individual articles are
// never mutated in place.
type Library struct {
	loader       *dataset.Loader
	cacheManager *cache.Manager
	cacheTTL     time.Duration

	mu       sync.RWMutex
	ds       *models.Dataset
	loadedAt time.Time
	lastErr  error
}

func New(loader *dataset.Loader, cacheManager *cache.Manager, cacheTTL time.Duration) *Library {
	return &Library{
		loader:       loader,
		cacheManager: cacheManager,
		cacheTTL:     cacheTTL,
	}
}

// Load fetches the dataset and swaps it in. On failure the previous dataset
// (if any) stays live and the error is recorded for status reporting.
func (l *Library) Load(ctx context.Context) error {
	ds, err := l.loader.Load(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.lastErr = err
		return err
	}

	l.ds = ds
	l.loadedAt = time.Now()
	l.lastErr = nil

	// Derived views of the old dataset are now stale
	l.cacheManager.Flush()

	log.Printf("Loaded %d articles from %s", len(ds.Articles), l.loader.Source())
	return nil
}

// Refresh re-reads the dataset from its source.
func (l *Library) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

// Ready reports whether a dataset has ever been loaded.
func (l *Library) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ds != nil
}

// Err returns the most recent load error, or nil after a successful load.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// LoadedAt returns the time of the last successful load.
func (l *Library) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}

// Source returns the dataset location.
func (l *Library) Source() string {
	return l.loader.Source()
}

// Metadata returns the blog header fields.
func (l *Library) Metadata() models.Metadata {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return models.Metadata{}
	}
	return l.ds.Metadata
}

// ColorScheme returns the dataset's country color map.
func (l *Library) ColorScheme() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return map[string]string{}
	}
	return l.ds.MapSettings.ColorScheme
}

// ArticleCount returns the total number of loaded articles.
func (l *Library) ArticleCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return 0
	}
	return len(l.ds.Articles)
}

// Article looks up a single article by id.
func (l *Library) Article(id string) (models.Article, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return models.Article{}, false
	}
	for _, a := range l.ds.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// Articles returns the articles matching the filter, in dataset order.
// All three filter values combine with AND semantics; the zero filter
// returns everything.
func (l *Library) Articles(f models.Filter) []models.Article {
	cacheKey := cache.Key("articles", f.Country, f.Year, f.Search)
	if cached, found := l.cacheManager.Get(cacheKey); found {
		if articles, ok := cached.([]models.Article); ok {
			return articles
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return nil
	}

	matched := make([]models.Article, 0, len(l.ds.Articles))
	for _, a := range l.ds.Articles {
		if matches(a, f) {
			matched = append(matched, a)
		}
	}

	l.cacheManager.Set(cacheKey, matched, l.cacheTTL)
	return matched
}

func matches(a models.Article, f models.Filter) bool {
	if f.Country != "" && a.Country != f.Country {
		return false
	}
	if f.Year != "" && a.YearString() != f.Year {
		return false
	}
	if f.Search != "" && !articleContains(a, f.Search) {
		return false
	}
	return true
}

func articleContains(a models.Article, term string) bool {
	term = strings.ToLower(term)

	fields := []string{
		a.Title,
		a.City,
		a.Country,
		a.Content,
		strings.Join(a.Tags, " "),
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

// Countries returns the distinct countries across all articles,
// sorted alphabetically for the filter dropdown.
func (l *Library) Countries() []string {
	cacheKey := cache.Key("countries")
	if cached, found := l.cacheManager.Get(cacheKey); found {
		if countries, ok := cached.([]string); ok {
			return countries
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return nil
	}

	seen := make(map[string]bool)
	countries := []string{}
	for _, a := range l.ds.Articles {
		if !seen[a.Country] {
			seen[a.Country] = true
			countries = append(countries, a.Country)
		}
	}
	sort.Strings(countries)

	l.cacheManager.Set(cacheKey, countries, l.cacheTTL)
	return countries
}

// Years returns the distinct article years, newest first, as the textual
// values the year filter compares against.
func (l *Library) Years() []string {
	cacheKey := cache.Key("years")
	if cached, found := l.cacheManager.Get(cacheKey); found {
		if years, ok := cached.([]string); ok {
			return years
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ds == nil {
		return nil
	}

	seen := make(map[int]bool)
	numeric := []int{}
	for _, a := range l.ds.Articles {
		if a.Year == 0 {
			continue
		}
		if !seen[a.Year] {
			seen[a.Year] = true
			numeric = append(numeric, a.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(numeric)))

	years := make([]string, len(numeric))
	for i, y := range numeric {
		years[i] = strconv.Itoa(y)
	}

	l.cacheManager.Set(cacheKey, years, l.cacheTTL)
	return years
}
