package domain

import "time"

// Category groups questions by the aspect of security practice they measure.
// CategoryRisk is special: it measures work-context threat exposure rather
// than hygiene, and feeds the risk classifier's row selection.
type Category string

const (
	CategoryRisk          Category = "risk"
	CategoryPassword      Category = "password"
	CategoryDevice        Category = "device"
	CategoryCommunication Category = "communication"
	CategoryData          Category = "data"
	CategoryPhysical      Category = "physical"
)

// RiskLevel is the output of the exposure-vs-hygiene decision matrix.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Priority tags a weak area by how urgently it needs attention.
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
)

// Option is one selectable answer for a question.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Question models a multiple-choice question. Options are displayed in
// declaration order; each question has at least two.
type Question struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
}

// Ceiling returns the maximum points achievable on this question.
func (q Question) Ceiling() int {
	max := 0
	for _, opt := range q.Options {
		if opt.Points > max {
			max = opt.Points
		}
	}
	return max
}

// Bank is an ordered catalog of questions.
type Bank struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Categories returns the bank's categories in order of first occurrence.
func (b Bank) Categories() []Category {
	seen := make(map[Category]bool, 6)
	order := make([]Category, 0, 6)
	for _, q := range b.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			order = append(order, q.Category)
		}
	}
	return order
}

// Answer records the option a respondent selected for one question.
// Selecting again overwrites; at most one answer per question.
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedValue string `json:"selectedValue"`
	Points        int    `json:"points"`
}

// AnswerSet maps question ID to the answer given. It grows as the
// respondent progresses and need not be complete for intermediate reads.
type AnswerSet map[string]Answer

// Clone returns an independent copy so callers can snapshot session state.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// CategoryScore is the derived per-category breakdown. Never stored on its
// own outside a Result snapshot.
type CategoryScore struct {
	Category      Category `json:"category"`
	EarnedPoints  int      `json:"earnedPoints"`
	CeilingPoints int      `json:"ceilingPoints"`
	Percentage    int      `json:"percentage"`
}

// WeakArea is one entry in the ranked list of categories needing attention.
type WeakArea struct {
	Category   Category `json:"category"`
	Percentage int      `json:"percentage"`
	Priority   Priority `json:"priority"`
}

// Result is the immutable snapshot persisted when an assessment completes.
// Results are appended to a per-user history and never revised.
type Result struct {
	ID                string                     `json:"id"`
	Score             int                        `json:"score"`
	CategoryScores    map[Category]CategoryScore `json:"categoryScores"`
	RiskLevel         RiskLevel                  `json:"riskLevel"`
	CompletedAt       time.Time                  `json:"completedAt"`
	TotalQuestions    int                        `json:"totalQuestions"`
	AnsweredQuestions int                        `json:"answeredQuestions"`
}
