package service

import (
	"github.com/nandaakram/chapter-assessment/config"
	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/model"
)

// ScoreResult is the derived triple stored on the assessment header.
type ScoreResult struct {
	TotalScore int
	Predicate  string
	Status     string
}

// ScoringEngine derives score, predicate and status from an assessment's
// error total. It is pure: no I/O, no clock, no randomness, so the same
// inputs always grade identically.
type ScoringEngine interface {
	Evaluate(totalErrors int, categories []model.ScoreCategory) (ScoreResult, error)
	SumErrors(details []model.AssessmentDetail) int
}

type scoringEngine struct {
	baseline      int
	passThreshold int
}

func NewScoringEngine(cfg *config.Config) ScoringEngine {
	return &scoringEngine{
		baseline:      cfg.Scoring.Baseline,
		passThreshold: cfg.Scoring.PassThreshold,
	}
}

// Evaluate computes total = baseline - totalErrors, then scans the category
// bands in catalog order and takes the first one containing the total. The
// total is not clamped: large error counts legitimately push it negative.
// Status compares against the pass threshold only; it never consults the
// category table, so the two can disagree at a band boundary.
func (e *scoringEngine) Evaluate(totalErrors int, categories []model.ScoreCategory) (ScoreResult, error) {
	total := e.baseline - totalErrors

	predicate := ""
	found := false
	for _, category := range categories {
		if total >= category.MinScore && total <= category.MaxScore {
			predicate = category.Name
			found = true
			break
		}
	}
	if !found {
		return ScoreResult{}, apperr.Integrity("score %d falls outside every score category band; the category table does not cover the attainable range", total)
	}

	status := model.StatusUlang
	if total >= e.passThreshold {
		status = model.StatusLanjut
	}

	return ScoreResult{TotalScore: total, Predicate: predicate, Status: status}, nil
}

// SumErrors totals the error counts of a detail set. An empty set sums to
// zero, which grades to the full baseline.
func (e *scoringEngine) SumErrors(details []model.AssessmentDetail) int {
	sum := 0
	for _, detail := range details {
		sum += detail.ErrorCount
	}
	return sum
}
