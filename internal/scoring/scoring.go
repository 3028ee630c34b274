// Package scoring implements the assessment scoring pipeline: overall
// percentage, per-category breakdown, the risk decision matrix, and
// weak-area ranking. Everything here is a pure function over domain data.
package scoring

import (
	"math"
	"sort"

	"secassess-service/internal/domain"
)

// weakThreshold marks a category as needing attention; below
// criticalThreshold the recommendation is tagged critical.
const (
	weakThreshold     = 60
	criticalThreshold = 40
)

// OverallScore computes the overall percentage: points earned across the
// answer set over the sum of every question's ceiling, rounded half-up.
// Unanswered questions earn 0 but still count toward the ceiling.
func OverallScore(answers domain.AnswerSet, bank domain.Bank) (int, error) {
	if len(bank.Questions) == 0 {
		return 0, domain.ErrEmptyBank
	}
	earned, possible := 0, 0
	for _, q := range bank.Questions {
		possible += q.Ceiling()
		if ans, ok := answers[q.ID]; ok {
			earned += ans.Points
		}
	}
	if possible == 0 {
		return 0, domain.ErrEmptyBank
	}
	return percentage(earned, possible), nil
}

// CategoryScores computes the per-category breakdown. The returned map is
// keyed by category; consumers needing a stable order iterate
// bank.Categories(). Categories with no questions are never emitted.
func CategoryScores(answers domain.AnswerSet, bank domain.Bank) (map[domain.Category]domain.CategoryScore, error) {
	if len(bank.Questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	scores := make(map[domain.Category]domain.CategoryScore, 6)
	for _, q := range bank.Questions {
		cs := scores[q.Category]
		cs.Category = q.Category
		cs.CeilingPoints += q.Ceiling()
		if ans, ok := answers[q.ID]; ok {
			cs.EarnedPoints += ans.Points
		}
		scores[q.Category] = cs
	}
	for cat, cs := range scores {
		if cs.CeilingPoints > 0 {
			cs.Percentage = percentage(cs.EarnedPoints, cs.CeilingPoints)
		}
		scores[cat] = cs
	}
	return scores, nil
}

// ClassifyRisk maps overall hygiene and work-context exposure onto a risk
// level via a fixed decision table. The work-context score selects the row,
// the overall score the column; band edges are closed on the lower bound.
//
//	work <40:   critical | high   | medium
//	work 40-69: high     | medium | low
//	work >=70:  medium   | low    | low
//	            (overall <50 | 50-69 | >=70)
//
// The band widths differ on purpose: exposure rows split at 40/70 while
// hygiene columns split at 50/70, so swapping the two scores can change
// the outcome.
func ClassifyRisk(overallScore int, categoryScores map[domain.Category]domain.CategoryScore) (domain.RiskLevel, error) {
	risk, ok := categoryScores[domain.CategoryRisk]
	if !ok || risk.CeilingPoints == 0 {
		return "", domain.ErrMissingRiskScore
	}
	return RiskLevelFor(overallScore, risk.Percentage), nil
}

// RiskLevelFor evaluates the decision table directly. Callers that need
// graceful degradation when the work-context score is unavailable pass a
// neutral 50 explicitly; this function never guesses.
func RiskLevelFor(overallScore, workContextScore int) domain.RiskLevel {
	var row [3]domain.RiskLevel
	switch {
	case workContextScore < 40:
		row = [3]domain.RiskLevel{domain.RiskCritical, domain.RiskHigh, domain.RiskMedium}
	case workContextScore < 70:
		row = [3]domain.RiskLevel{domain.RiskHigh, domain.RiskMedium, domain.RiskLow}
	default:
		row = [3]domain.RiskLevel{domain.RiskMedium, domain.RiskLow, domain.RiskLow}
	}
	switch {
	case overallScore < 50:
		return row[0]
	case overallScore < 70:
		return row[1]
	default:
		return row[2]
	}
}

// RankWeakAreas returns the categories scoring below 60, weakest first,
// ties broken by category declaration order in the bank. Entries under 40
// are tagged critical, the rest important. The full list is returned; any
// top-N truncation is the consumer's presentation policy.
func RankWeakAreas(categoryScores map[domain.Category]domain.CategoryScore, bank domain.Bank) []domain.WeakArea {
	weak := make([]domain.WeakArea, 0, len(categoryScores))
	for _, cat := range bank.Categories() {
		cs, ok := categoryScores[cat]
		if !ok || cs.Percentage >= weakThreshold {
			continue
		}
		priority := domain.PriorityImportant
		if cs.Percentage < criticalThreshold {
			priority = domain.PriorityCritical
		}
		weak = append(weak, domain.WeakArea{
			Category:   cat,
			Percentage: cs.Percentage,
			Priority:   priority,
		})
	}
	// Insertion order reflects declaration order, so a stable sort by
	// percentage preserves it for ties.
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Percentage < weak[j].Percentage
	})
	return weak
}

// percentage rounds half-up to the nearest integer.
func percentage(earned, possible int) int {
	return int(math.Floor(100*float64(earned)/float64(possible) + 0.5))
}
