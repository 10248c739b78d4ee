package risk

import (
	"strings"

	"github.com/hemant18-09/DOCai/internal/model"
	"github.com/hemant18-09/DOCai/internal/textnorm"
)

// ContextDetector finds onset/duration/trigger qualifiers in the text.
// Context matches annotate the report; they never contribute to the
// risk score, so context alone can never flag an emergency.
type ContextDetector struct{}

// NewContextDetector creates a context detector.
func NewContextDetector() *ContextDetector {
	return &ContextDetector{}
}

// Detect returns the names of matched context categories in catalog
// declaration order, each at most once.
func (d *ContextDetector) Detect(normalizedText string, cat *model.Catalog) []string {
	if normalizedText == "" || cat == nil {
		return nil
	}

	var matched []string
	for _, category := range cat.Contexts {
		for _, phrase := range category.Phrases {
			token := textnorm.Normalize(phrase)
			if token == "" {
				continue
			}
			if strings.Contains(normalizedText, token) {
				matched = append(matched, category.Name)
				break
			}
		}
	}
	return matched
}
