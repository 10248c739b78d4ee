// Package assess composes the normalizer, risk scorer and context
// detector into a single emergency screening call.
//
// The assessor gates nothing itself: it returns a report and the
// surrounding UI decides whether to block progression. It is advisory,
// not a diagnostic safety net.
package assess

import (
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/model"
	"github.com/hemant18-09/DOCai/internal/risk"
	"github.com/hemant18-09/DOCai/internal/textnorm"
)

// DefaultThreshold is the score at or above which a report is flagged,
// tuned to the category weights. Deployments override it via config,
// callers per call via Options.
const DefaultThreshold = 70

// Options carries per-call overrides for an assessment.
type Options struct {
	// Threshold overrides the assessor's threshold when positive.
	Threshold int
}

// Assessor runs emergency screening against the current catalog
// snapshot. Assess is total: it always returns a well-formed report,
// for any input, even when the catalog is empty or unavailable.
type Assessor struct {
	store     *catalog.Store
	scorer    *risk.Scorer
	detector  *risk.ContextDetector
	threshold int
	messages  map[string]string
}

// New creates an assessor over the given catalog store, configured by
// cfg. A nil cfg uses the built-in defaults; a nil store is backed by
// an empty catalog so screening fails open instead of panicking.
func New(store *catalog.Store, cfg *model.ScreeningConfig) *Assessor {
	if cfg == nil {
		cfg = &model.DefaultConfig().Screening
	}
	if store == nil {
		store = catalog.NewStore(model.EmptyCatalog())
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Assessor{
		store:     store,
		scorer:    risk.NewScorer(cfg.Weights, cfg.DefaultWeight),
		detector:  risk.NewContextDetector(),
		threshold: threshold,
		messages:  cfg.Messages,
	}
}

// Assess screens raw text and produces a risk report.
//
// The whole call runs against one catalog snapshot loaded up front, so
// a concurrent catalog swap cannot produce a half-updated assessment.
func (a *Assessor) Assess(rawText string, opts *Options) model.RiskReport {
	threshold := a.threshold
	if opts != nil && opts.Threshold > 0 {
		threshold = opts.Threshold
	}

	text := textnorm.Normalize(rawText)
	snapshot := a.store.Current()

	score := a.scorer.Calculate(text, snapshot)
	contexts := a.detector.Detect(text, snapshot)

	isEmergency := score.Score >= threshold

	reasons := make([]string, 0, len(score.Categories)+len(contexts))
	for _, c := range score.Categories {
		reasons = append(reasons, "signal: "+c)
	}
	for _, c := range contexts {
		reasons = append(reasons, "context: "+c)
	}

	message := NoSignalsMessage
	if isEmergency {
		message = a.emergencyMessage(score.Lang)
	}

	return model.RiskReport{
		IsEmergency: isEmergency,
		Risk:        score.Score,
		Reasons:     reasons,
		Message:     message,
		Categories:  score.Categories,
		Contexts:    contexts,
		Lang:        score.Lang,
	}
}

// ShouldBlock is the thin gating view over Assess: block mirrors the
// report's emergency flag.
func (a *Assessor) ShouldBlock(rawText string, opts *Options) (bool, model.RiskReport) {
	report := a.Assess(rawText, opts)
	return report.IsEmergency, report
}

func (a *Assessor) emergencyMessage(lang string) string {
	if a.messages != nil {
		if msg, ok := a.messages[lang]; ok {
			return msg
		}
		if msg, ok := a.messages[model.LangEnglish]; ok {
			return msg
		}
	}
	return EmergencyMessage(lang)
}
