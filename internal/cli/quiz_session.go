package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/study"
)

// QuizSessionCLI asks the questions of a generated quiz one at a time and
// grades the collected answers at the end.
type QuizSessionCLI struct {
	*InteractiveCLI
	quiz     study.Quiz
	profile  study.Profile
	subject  string
	workflow *content.Workflow

	answers map[int][]string
	current int
}

// NewQuizSessionCLI creates an interactive session for a validated quiz.
func NewQuizSessionCLI(quiz study.Quiz, profile study.Profile, subject string, workflow *content.Workflow) (*QuizSessionCLI, error) {
	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("quiz.Validate() > %w", err)
	}

	return &QuizSessionCLI{
		InteractiveCLI: newInteractiveCLI(),
		quiz:           quiz,
		profile:        profile,
		subject:        subject,
		workflow:       workflow,
		answers:        make(map[int][]string),
	}, nil
}

func (r *QuizSessionCLI) Session(ctx context.Context) error {
	if r.current >= len(r.quiz.Questions) {
		return r.finish(ctx)
	}

	question := r.quiz.Questions[r.current]
	fmt.Fprintf(r.stdoutWriter, "Question %d of %d\n", r.current+1, len(r.quiz.Questions))
	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s\n", question.Question)

	for i, option := range question.Options {
		fmt.Fprintf(r.stdoutWriter, "  %d. %s\n", i+1, option)
	}

	switch question.Kind {
	case study.MultiChoice:
		fmt.Fprint(r.stdoutWriter, "Answer (comma-separated numbers): ")
	case study.SingleChoice:
		fmt.Fprint(r.stdoutWriter, "Answer (number): ")
	default:
		fmt.Fprint(r.stdoutWriter, "Answer: ")
	}

	line, err := r.readLine()
	if err != nil {
		return err
	}

	answer, err := r.parseAnswer(question, line)
	if err != nil {
		color.Red("%v", err)
		return nil
	}

	r.answers[r.current] = answer
	r.current++
	fmt.Fprintln(r.stdoutWriter)
	return nil
}

// parseAnswer resolves the user input into answer values. Choice questions
// accept the option numbers shown next to each option.
func (r *QuizSessionCLI) parseAnswer(question study.Question, line string) ([]string, error) {
	if question.Kind == study.ShortAnswer {
		return []string{line}, nil
	}

	fields := strings.Split(line, ",")
	if question.Kind == study.SingleChoice && len(fields) > 1 {
		return nil, fmt.Errorf("pick exactly one option")
	}

	var answer []string
	for _, field := range fields {
		index := 0
		if _, err := fmt.Sscanf(strings.TrimSpace(field), "%d", &index); err != nil {
			return nil, fmt.Errorf("invalid option number %q", strings.TrimSpace(field))
		}
		if index < 1 || index > len(question.Options) {
			return nil, fmt.Errorf("option number %d is out of range", index)
		}
		answer = append(answer, question.Options[index-1])
	}
	return answer, nil
}

func (r *QuizSessionCLI) finish(ctx context.Context) error {
	graded := study.Grade(r.quiz, r.answers)

	fmt.Fprintf(r.stdoutWriter, "You scored %s out of %d.\n",
		r.bold.Sprintf("%d", graded.Score), len(r.quiz.Questions))

	for _, missed := range graded.Incorrect {
		fmt.Fprint(r.stdoutWriter, "❌ ")
		color.Red("%s", missed.Question)
		fmt.Fprintf(r.stdoutWriter, "   Correct answer: %s\n", strings.Join(missed.Answer, ", "))
		if missed.Explanation != "" {
			fmt.Fprintf(r.stdoutWriter, "   %s\n", missed.Explanation)
		}
	}

	if len(graded.Incorrect) > 0 {
		suggestions, err := r.workflow.Suggestions(ctx, r.profile, r.subject, graded)
		if err != nil {
			suggestions = content.FallbackSuggestionsMessage
		}
		fmt.Fprintf(r.stdoutWriter, "\nStudy suggestions:\n%s\n", suggestions)
	}

	if r.quiz.SWOTAnalysis != "" {
		fmt.Fprintf(r.stdoutWriter, "\nSWOT analysis:\n%s\n", r.quiz.SWOTAnalysis)
	}
	return errEnd
}
