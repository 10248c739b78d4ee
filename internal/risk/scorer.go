// Package risk matches normalized symptom text against a catalog
// snapshot and accumulates a severity score.
package risk

import (
	"strings"

	"github.com/hemant18-09/DOCai/internal/model"
	"github.com/hemant18-09/DOCai/internal/textnorm"
)

// Scorer accumulates severity points for matched symptom categories.
// Weights are configuration data; categories without an entry score
// the default weight.
type Scorer struct {
	weights       map[string]int
	defaultWeight int
}

// NewScorer creates a scorer with the given weight table. A nil table
// or non-positive default falls back to the built-in defaults.
func NewScorer(weights map[string]int, defaultWeight int) *Scorer {
	if weights == nil {
		weights = model.DefaultConfig().Screening.Weights
	}
	if defaultWeight <= 0 {
		defaultWeight = model.DefaultConfig().Screening.DefaultWeight
	}
	return &Scorer{weights: weights, defaultWeight: defaultWeight}
}

// Calculate scans normalized text against the catalog's symptom
// categories in declaration order. Within a category the first matching
// phrase wins: the category is recorded once, its weight added once,
// and its phrase's language becomes the detected language. Because
// categories are visited in order, the last matching category decides
// the final language. That tie-break is a behavioral contract the
// localized emergency message depends on, not an accident.
//
// Catalog phrases are normalized with the same normalizer as the input,
// so catalog authors never pre-normalize.
func (s *Scorer) Calculate(normalizedText string, cat *model.Catalog) model.RiskScore {
	result := model.RiskScore{Lang: model.LangEnglish}
	if normalizedText == "" || cat == nil {
		return result
	}

	for _, category := range cat.Symptoms {
		for _, phrase := range category.Phrases {
			token := textnorm.Normalize(phrase.Text)
			if token == "" {
				continue
			}
			if strings.Contains(normalizedText, token) {
				result.Categories = append(result.Categories, category.Name)
				result.Score += s.weight(category.Name)
				result.Lang = phrase.Language()
				break
			}
		}
	}

	return result
}

func (s *Scorer) weight(category string) int {
	if w, ok := s.weights[category]; ok {
		return w
	}
	return s.defaultWeight
}
