package application

import (
	"fmt"
	"strings"

	"sportsNewsMCP/internal/domain/entity"
)

// Classifier maps free text to a category by keyword substring match.
// Categories are tried in table order; the first entry is the fallback.
type Classifier struct {
	table []entity.CategoryInfo
}

func NewClassifier(table []entity.CategoryInfo) (*Classifier, error) {
	if err := entity.ValidateCategories(table); err != nil {
		return nil, fmt.Errorf("invalid category table: %w", err)
	}

	normalized := make([]entity.CategoryInfo, 0, len(table))
	for _, info := range table {
		normalized = append(normalized, info.WithExtraKeywords(nil))
	}
	return &Classifier{table: normalized}, nil
}

func (c *Classifier) Classify(query string) entity.CategoryInfo {
	input := strings.ToLower(query)
	if strings.TrimSpace(input) == "" {
		return c.Default()
	}

	for _, info := range c.table {
		for _, kw := range info.Keywords {
			if strings.Contains(input, kw) {
				return info
			}
		}
	}
	return c.Default()
}

func (c *Classifier) Default() entity.CategoryInfo {
	return c.table[0]
}

// Lookup resolves an explicit category identifier or display name.
func (c *Classifier) Lookup(name string) (entity.CategoryInfo, error) {
	name = strings.TrimSpace(name)
	for _, info := range c.table {
		if strings.EqualFold(string(info.ID), name) || info.DisplayName == name {
			return info, nil
		}
	}
	return entity.CategoryInfo{}, fmt.Errorf("%w: %q", entity.ErrUnknownCategory, name)
}

func (c *Classifier) Categories() []entity.CategoryInfo {
	out := make([]entity.CategoryInfo, len(c.table))
	copy(out, c.table)
	return out
}
