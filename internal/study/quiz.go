package study

import (
	"fmt"
	"slices"
)

// QuestionKind distinguishes how a quiz question is answered.
type QuestionKind string

const (
	SingleChoice QuestionKind = "single_choice"
	MultiChoice  QuestionKind = "multi_choice"
	ShortAnswer  QuestionKind = "short_answer"
)

// Question is a single generated quiz question. Options are present for
// choice questions only; Answer is the canonical answer set.
type Question struct {
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      []string     `json:"answer"`
	Kind        QuestionKind `json:"kind"`
	Explanation string       `json:"explanation"`
}

// Quiz is created atomically from one generation response and never partially
// updated afterwards.
type Quiz struct {
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	SWOTAnalysis string     `json:"swot_analysis"`
}

// Validate checks the structural invariants of a generated quiz before it is
// handed to the grading engine.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q has no questions", q.Title)
	}
	for i, question := range q.Questions {
		if err := question.validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

func (q Question) validate() error {
	switch q.Kind {
	case SingleChoice, MultiChoice, ShortAnswer:
	default:
		return fmt.Errorf("unknown question kind %q", q.Kind)
	}

	if len(q.Answer) == 0 {
		return fmt.Errorf("question %q has an empty answer set", q.Question)
	}

	if q.Kind == ShortAnswer {
		if len(q.Options) > 0 {
			return fmt.Errorf("short answer question %q must not have options", q.Question)
		}
		return nil
	}

	if len(q.Options) == 0 {
		return fmt.Errorf("%s question %q has no options", q.Kind, q.Question)
	}
	for _, answer := range q.Answer {
		if !slices.Contains(q.Options, answer) {
			return fmt.Errorf("question %q: answer %q is not among the options", q.Question, answer)
		}
	}
	return nil
}

// GradeResult is the outcome of grading one submitted quiz.
type GradeResult struct {
	Score     int        `json:"score"`
	Incorrect []Question `json:"incorrect"`
}

// Grade compares the user's answers against the canonical answer sets.
// Comparison is order-independent but case-sensitive with exact string
// matching per element; a question with no submitted answer counts as an
// empty set. Incorrect questions keep their original order.
func Grade(quiz Quiz, answers map[int][]string) GradeResult {
	var result GradeResult
	for i, question := range quiz.Questions {
		if equalAnswerSets(question.Answer, answers[i]) {
			result.Score++
			continue
		}
		result.Incorrect = append(result.Incorrect, question)
	}
	return result
}

func equalAnswerSets(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	wantSorted := slices.Clone(want)
	gotSorted := slices.Clone(got)
	slices.Sort(wantSorted)
	slices.Sort(gotSorted)
	return slices.Equal(wantSorted, gotSorted)
}
