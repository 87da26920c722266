package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"blotmap/internal/models"
)

// Loader reads the article dataset from a local file or an HTTP(S) URL.
// The whole dataset is loaded in one shot; there is no incremental sync.
type Loader struct {
	source string
	client *http.Client
}

func NewLoader(source string, timeout time.Duration) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: timeout},
	}
}

// Source returns the configured dataset location.
func (l *Loader) Source() string {
	return l.source
}

// wireDataset defers article decoding so that one malformed entry is
// skipped instead of failing the whole document.
type wireDataset struct {
	Metadata    models.Metadata    `json:"metadata"`
	MapSettings models.MapSettings `json:"mapSettings"`
	Articles    []json.RawMessage  `json:"articles"`
}

// Load fetches, parses and normalizes the dataset. Any failure is returned
// to the caller; callers decide whether the service keeps running on the
// previous dataset or reports an error state.
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset from %s: %w", l.source, err)
	}

	var wire wireDataset
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	ds := &models.Dataset{
		Metadata:    wire.Metadata,
		MapSettings: wire.MapSettings,
		Articles:    make([]models.Article, 0, len(wire.Articles)),
	}
	for i, raw := range wire.Articles {
		var a models.Article
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Printf("Warning: skipping malformed article at index %d: %v", i, err)
			continue
		}
		ds.Articles = append(ds.Articles, a)
	}

	normalize(ds)
	return ds, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if isURL(l.source) {
		return l.fetchHTTP(ctx)
	}
	return os.ReadFile(l.source)
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// normalize trims identifying fields, fills derivable gaps and drops
// articles that cannot be placed on the map. Dropping is logged, not fatal:
// one malformed entry should not take the whole blog down.
func normalize(ds *models.Dataset) {
	kept := ds.Articles[:0]
	for _, a := range ds.Articles {
		a.City = strings.TrimSpace(a.City)
		a.Country = strings.TrimSpace(a.Country)
		a.Title = strings.TrimSpace(a.Title)

		if a.ID == "" || a.Title == "" || a.City == "" || a.Country == "" {
			log.Printf("Warning: skipping article with missing fields (id=%q, title=%q)", a.ID, a.Title)
			continue
		}

		if a.Year == 0 {
			a.Year = yearFromDate(a.Date)
			if a.Year == 0 {
				log.Printf("Warning: article %s has no usable year (date=%q)", a.ID, a.Date)
			}
		}

		if a.ReadingTime == 0 && a.WordCount > 0 {
			a.ReadingTime = (a.WordCount + 199) / 200
		}

		kept = append(kept, a)
	}
	ds.Articles = kept

	if ds.MapSettings.ColorScheme == nil {
		ds.MapSettings.ColorScheme = map[string]string{}
	}
}

func yearFromDate(date string) int {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Year()
	}
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 0 {
			return y
		}
	}
	return 0
}
