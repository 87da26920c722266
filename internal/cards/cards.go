package cards

import (
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"blotmap/internal/models"
)

const excerptLimit = 200

var (
	linkPattern    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imagePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	spacePattern   = regexp.MustCompile(`\s+`)
	markerStripper = strings.NewReplacer("**", "", "__", "", "*", "", "_", "", "#", "", "`", "", ">", "")
)

// Builder turns dataset articles into their display form: anchored cards
// with formatted dates and a plain-text excerpt of the HTML content.
type Builder struct {
	converter *md.Converter
}

func NewBuilder() *Builder {
	return &Builder{
		converter: md.NewConverter("", true, nil),
	}
}

// Build produces the card for one article.
func (b *Builder) Build(a models.Article) models.ArticleCard {
	return models.ArticleCard{
		ID:          a.ID,
		Anchor:      Anchor(a.ID),
		Title:       a.Title,
		City:        a.City,
		Country:     a.Country,
		Coordinates: a.Coordinates,
		Date:        a.Date,
		DisplayDate: displayDate(a.Date),
		Year:        a.Year,
		WordCount:   a.WordCount,
		ReadingTime: a.ReadingTime,
		Content:     a.Content,
		Excerpt:     b.excerpt(a),
		Images:      a.Images,
		Tags:        a.Tags,
		Mood:        a.Mood,
	}
}

// BuildAll produces cards for every article, preserving order.
func (b *Builder) BuildAll(articles []models.Article) []models.ArticleCard {
	cards := make([]models.ArticleCard, len(articles))
	for i, a := range articles {
		cards[i] = b.Build(a)
	}
	return cards
}

// Anchor returns the DOM id used to address an article card from the map.
func Anchor(id string) string {
	return "article-" + id
}

func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		// Unparseable dates pass through untouched
		return date
	}
	return t.Format("2 Jan 2006")
}

func (b *Builder) excerpt(a models.Article) string {
	text, err := b.converter.ConvertString(a.Content)
	if err != nil {
		log.Printf("Warning: failed to convert content for article %s: %v", a.ID, err)
		text = a.Content
	}

	text = imagePattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = markerStripper.Replace(text)
	text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

	return truncate(text, excerptLimit)
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := limit
	for i := limit; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}

	return strings.TrimRight(string(runes[:cut]), " ,;:.") + "…"
}
