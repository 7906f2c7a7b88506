package application

import (
	"fmt"
	"strings"
	"time"

	"sportsNewsMCP/internal/domain/entity"
)

// DefaultDateLayout renders dates like the ko-KR short date, e.g. "2024. 6. 9.".
const DefaultDateLayout = "2006. 1. 2."

const degradedNotice = "⚠️ 뉴스 제공처에 연결하지 못했습니다. 잠시 후 다시 시도해 주세요."

type NewsView struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type NewsPayload struct {
	Category string     `json:"category"`
	Query    string     `json:"query,omitempty"`
	Count    int        `json:"count"`
	News     []NewsView `json:"news"`
	Degraded bool       `json:"degraded,omitempty"`
}

// Formatter renders a fetched batch for REST clients and for tool output.
// Both renderings keep provider order.
type Formatter struct {
	location   *time.Location
	dateLayout string
}

func NewFormatter(location *time.Location, dateLayout string) *Formatter {
	if location == nil {
		location = time.Local
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Formatter{location: location, dateLayout: dateLayout}
}

func (f *Formatter) Structured(label string, batch *entity.NewsBatch) NewsPayload {
	news := make([]NewsView, 0, len(batch.Items))
	for _, item := range batch.Items {
		news = append(news, NewsView{
			Title:   item.Title,
			Summary: item.Summary,
			Source:  item.Publisher,
			Date:    item.CreatedAt.In(f.location).Format(f.dateLayout),
		})
	}

	return NewsPayload{
		Category: label,
		Count:    len(news),
		News:     news,
		Degraded: batch.Degraded,
	}
}

func (f *Formatter) Narrative(batch *entity.NewsBatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 %s 뉴스 (%d개)\n\n", batch.Category.DisplayName, len(batch.Items))

	if batch.Degraded {
		b.WriteString(degradedNotice)
		return b.String()
	}

	entries := make([]string, 0, len(batch.Items))
	for i, item := range batch.Items {
		entries = append(entries, fmt.Sprintf("%d. %s\n   언론사: %s", i+1, item.Title, item.Publisher))
	}
	b.WriteString(strings.Join(entries, "\n\n"))

	return b.String()
}
