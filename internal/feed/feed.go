package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/gorilla/feeds"

	"blotmap/internal/cards"
	"blotmap/internal/models"
)

// Builder renders the article list as an RSS feed. Items link back to the
// article's card anchor on the map page.
type Builder struct {
	siteURL string
	cards   *cards.Builder
}

func NewBuilder(siteURL string, cardBuilder *cards.Builder) *Builder {
	return &Builder{siteURL: siteURL, cards: cardBuilder}
}

// RSS produces the feed XML with articles ordered newest first. Articles
// sharing a date keep their dataset order.
func (b *Builder) RSS(meta models.Metadata, articles []models.Article) (string, error) {
	sorted := make([]models.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	f := &feeds.Feed{
		Title:       meta.BlogTitle,
		Link:        &feeds.Link{Href: b.siteURL + "/"},
		Description: meta.Tagline,
		Created:     time.Now(),
	}

	for _, a := range sorted {
		card := b.cards.Build(a)
		link := fmt.Sprintf("%s/#%s", b.siteURL, card.Anchor)

		f.Items = append(f.Items, &feeds.Item{
			Id:          link,
			Title:       a.Title,
			Link:        &feeds.Link{Href: link},
			Description: card.Excerpt,
			Content:     a.Content,
			Created:     parseDate(a.Date),
		})
	}

	return f.ToRss()
}

func parseDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}
