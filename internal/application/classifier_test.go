package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsNewsMCP/internal/domain/entity"
)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(entity.DefaultCategories())
	require.NoError(t, err)
	return c
}

func TestClassifier_Classify(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		name     string
		query    string
		expected entity.Category
	}{
		{"champions league", "챔피언스리그 소식", entity.CategoryWorldSoccer},
		{"plain soccer", "오늘 축구 뉴스", entity.CategoryWorldSoccer},
		{"premier league english", "Premier League results", entity.CategoryWorldSoccer},
		{"golf korean", "골프 소식 알려줘", entity.CategoryGolf},
		{"pga upper", "PGA 결과", entity.CategoryGolf},
		{"pga lower", "pga 결과", entity.CategoryGolf},
		{"lpga", "LPGA 투어 순위", entity.CategoryGolf},
		{"no match defaults", "야구 결과", entity.CategoryWorldSoccer},
		{"empty defaults", "", entity.CategoryWorldSoccer},
		{"whitespace defaults", "   ", entity.CategoryWorldSoccer},
		{"overlap resolved by priority", "골프 치는 축구 선수", entity.CategoryWorldSoccer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.query).ID)
		})
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	c := newDefaultClassifier(t)
	assert.Equal(t, c.Classify("PGA"), c.Classify("pga"))
	assert.Equal(t, c.Classify("GOLF"), c.Classify("golf"))
}

func TestClassifier_EveryKeywordClassifiesToItsCategory(t *testing.T) {
	c := newDefaultClassifier(t)

	for i, info := range entity.DefaultCategories() {
		for _, kw := range info.Keywords {
			got := c.Classify("최신 " + kw + " 소식").ID
			if i == 0 {
				assert.Equal(t, info.ID, got, "keyword %q", kw)
				continue
			}
			// lower-priority keywords win unless a higher-priority keyword is also a substring
			higherMatched := false
			for _, higher := range entity.DefaultCategories()[:i] {
				for _, hk := range higher.Keywords {
					if strings.Contains(kw, hk) {
						higherMatched = true
					}
				}
			}
			if !higherMatched {
				assert.Equal(t, info.ID, got, "keyword %q", kw)
			}
		}
	}
}

func TestClassifier_ConfigurableTable(t *testing.T) {
	table := entity.DefaultCategories()
	table[1] = table[1].WithExtraKeywords([]string{"Scheffler"})

	c, err := NewClassifier(table)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryGolf, c.Classify("scheffler wins again").ID)
}

func TestClassifier_CustomPriority(t *testing.T) {
	c, err := NewClassifier([]entity.CategoryInfo{
		{ID: "golf", ProviderID: "5000", DisplayName: "골프", Keywords: []string{"골프"}},
		{ID: "worldSoccer", ProviderID: "100032", DisplayName: "해외축구", Keywords: []string{"축구"}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CategoryGolf, c.Default().ID)
	assert.Equal(t, entity.CategoryGolf, c.Classify("골프 치는 축구 선수").ID)
}

func TestNewClassifier_InvalidTable(t *testing.T) {
	_, err := NewClassifier([]entity.CategoryInfo{
		{ID: "a", ProviderID: "1"},
	})
	assert.Error(t, err)
}

func TestClassifier_Lookup(t *testing.T) {
	c := newDefaultClassifier(t)

	info, err := c.Lookup("golf")
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryGolf, info.ID)

	info, err = c.Lookup("WORLDSOCCER")
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryWorldSoccer, info.ID)

	info, err = c.Lookup("해외축구")
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryWorldSoccer, info.ID)

	_, err = c.Lookup("baseball")
	assert.ErrorIs(t, err, entity.ErrUnknownCategory)
}
