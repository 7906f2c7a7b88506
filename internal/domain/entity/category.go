package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies a supported sports news section.
type Category string

const (
	CategoryWorldSoccer Category = "worldSoccer"
	CategoryGolf        Category = "golf"
)

var ErrUnknownCategory = errors.New("unknown category")

// CategoryInfo holds the provider id, display name and keywords of a category.
type CategoryInfo struct {
	ID          Category
	ProviderID  string
	DisplayName string
	Keywords    []string
}

// DefaultCategories returns the built-in table in priority order.
// The first entry is the fallback when nothing matches.
func DefaultCategories() []CategoryInfo {
	return []CategoryInfo{
		{
			ID:          CategoryWorldSoccer,
			ProviderID:  "100032",
			DisplayName: "해외축구",
			Keywords: []string{
				"축구", "해외축구", "챔피언스리그", "프리미어리그", "라리가", "분데스리가",
				"세리에", "리그앙", "유로파", "월드컵", "손흥민", "이강인", "김민재",
				"soccer", "football", "premier league", "champions league", "uefa",
			},
		},
		{
			ID:          CategoryGolf,
			ProviderID:  "5000",
			DisplayName: "골프",
			Keywords: []string{
				"골프", "pga", "lpga", "kpga", "klpga", "마스터스", "디오픈",
				"투어", "버디", "golf", "masters",
			},
		},
	}
}

// ValidateCategories checks the table invariants: at least one entry,
// unique ids, unique provider ids and non-empty keyword sets.
func ValidateCategories(table []CategoryInfo) error {
	if len(table) == 0 {
		return fmt.Errorf("category table is empty")
	}

	ids := make(map[Category]bool, len(table))
	providerIDs := make(map[string]Category, len(table))
	for _, info := range table {
		if info.ID == "" {
			return fmt.Errorf("category with provider id %q has no identifier", info.ProviderID)
		}
		if ids[info.ID] {
			return fmt.Errorf("duplicate category %q", info.ID)
		}
		ids[info.ID] = true

		if info.ProviderID == "" {
			return fmt.Errorf("category %q has no provider id", info.ID)
		}
		if other, ok := providerIDs[info.ProviderID]; ok {
			return fmt.Errorf("provider id %q shared by %q and %q", info.ProviderID, other, info.ID)
		}
		providerIDs[info.ProviderID] = info.ID

		if len(normalizeKeywords(info.Keywords)) == 0 {
			return fmt.Errorf("category %q has no keywords", info.ID)
		}
	}
	return nil
}

// WithExtraKeywords returns a copy of info with extra appended after
// the built-in keywords. Blank and duplicate entries are dropped.
func (info CategoryInfo) WithExtraKeywords(extra []string) CategoryInfo {
	merged := make([]string, 0, len(info.Keywords)+len(extra))
	merged = append(merged, info.Keywords...)
	merged = append(merged, extra...)
	info.Keywords = normalizeKeywords(merged)
	return info
}

func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
