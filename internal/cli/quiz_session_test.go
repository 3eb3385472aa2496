package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	mock_inference "github.com/aknishi/studium/internal/mocks/inference"
	"github.com/aknishi/studium/internal/study"
)

func testQuiz() study.Quiz {
	return study.Quiz{
		Title: "Mechanics",
		Questions: []study.Question{
			{
				Question:    "Unit of force?",
				Options:     []string{"Newton", "Joule"},
				Answer:      []string{"Newton"},
				Kind:        study.SingleChoice,
				Explanation: "Force is measured in newtons.",
			},
			{
				Question:    "Which are vector quantities?",
				Options:     []string{"Velocity", "Speed", "Acceleration"},
				Answer:      []string{"Velocity", "Acceleration"},
				Kind:        study.MultiChoice,
				Explanation: "Vectors have direction.",
			},
			{
				Question:    "What is the SI unit of energy?",
				Answer:      []string{"Joule"},
				Kind:        study.ShortAnswer,
				Explanation: "Energy is measured in joules.",
			},
		},
		SWOTAnalysis: "Strengths: units.",
	}
}

func newTestQuizCLI(t *testing.T, client inference.Client, input string) (*QuizSessionCLI, *bytes.Buffer) {
	t.Helper()

	registry, err := content.NewRegistry("")
	require.NoError(t, err)

	cli, err := NewQuizSessionCLI(
		testQuiz(),
		study.Profile{AcademicLevel: "undergraduate"},
		"Physics",
		content.NewWorkflow(registry, client),
	)
	require.NoError(t, err)

	output := bytes.NewBuffer(nil)
	cli.stdinReader = bufio.NewReader(strings.NewReader(input))
	cli.stdoutWriter = output
	cli.bold = color.New(color.Bold)
	cli.italic = color.New(color.Italic)
	return cli, output
}

func runQuizSession(t *testing.T, cli *QuizSessionCLI) {
	t.Helper()

	for {
		err := cli.Session(context.Background())
		if err != nil {
			assert.ErrorIs(t, err, errEnd)
			return
		}
	}
}

func TestNewQuizSessionCLI_InvalidQuiz(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry, err := content.NewRegistry("")
	require.NoError(t, err)

	_, err = NewQuizSessionCLI(
		study.Quiz{Title: "empty"},
		study.Profile{},
		"Physics",
		content.NewWorkflow(registry, mock_inference.NewMockClient(ctrl)),
	)
	assert.Error(t, err)
}

func TestQuizSessionCLI_Session(t *testing.T) {
	t.Run("a perfect run reports the score without suggestions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cli, output := newTestQuizCLI(t, mock_inference.NewMockClient(ctrl), "1\n1,3\nJoule\n")

		runQuizSession(t, cli)
		assert.Contains(t, output.String(), "You scored")
		assert.Contains(t, output.String(), "out of 3")
		assert.Contains(t, output.String(), "SWOT analysis")
		assert.NotContains(t, output.String(), "Study suggestions")
	})

	t.Run("missed questions trigger a remediation request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mock_inference.NewMockClient(ctrl)
		mockClient.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			Return(inference.GenerateResponse{Text: "Revisit SI units."}, nil)

		cli, output := newTestQuizCLI(t, mockClient, "2\n1,3\nJoule\n")

		runQuizSession(t, cli)
		assert.Contains(t, output.String(), "Correct answer: Newton")
		assert.Contains(t, output.String(), "Force is measured in newtons.")
		assert.Contains(t, output.String(), "Revisit SI units.")
	})

	t.Run("an invalid option number repeats the question", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cli, _ := newTestQuizCLI(t, mock_inference.NewMockClient(ctrl), "9\n1\n1,3\nJoule\n")

		runQuizSession(t, cli)
		assert.Len(t, cli.answers, 3)
		assert.Equal(t, []string{"Newton"}, cli.answers[0])
	})
}

func TestQuizSessionCLI_parseAnswer(t *testing.T) {
	question := study.Question{
		Question: "Which are vector quantities?",
		Options:  []string{"Velocity", "Speed", "Acceleration"},
		Answer:   []string{"Velocity", "Acceleration"},
		Kind:     study.MultiChoice,
	}

	tests := []struct {
		name    string
		kind    study.QuestionKind
		line    string
		want    []string
		wantErr bool
	}{
		{
			name: "multiple numbers map to options",
			kind: study.MultiChoice,
			line: "1, 3",
			want: []string{"Velocity", "Acceleration"},
		},
		{
			name: "single choice takes one number",
			kind: study.SingleChoice,
			line: "2",
			want: []string{"Speed"},
		},
		{
			name:    "single choice rejects multiple numbers",
			kind:    study.SingleChoice,
			line:    "1,2",
			wantErr: true,
		},
		{
			name:    "out of range",
			kind:    study.MultiChoice,
			line:    "4",
			wantErr: true,
		},
		{
			name:    "not a number",
			kind:    study.MultiChoice,
			line:    "Velocity",
			wantErr: true,
		},
		{
			name: "short answer passes through",
			kind: study.ShortAnswer,
			line: "Joule",
			want: []string{"Joule"},
		},
	}

	ctrl := gomock.NewController(t)
	cli, _ := newTestQuizCLI(t, mock_inference.NewMockClient(ctrl), "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question
			q.Kind = tt.kind

			got, err := cli.parseAnswer(q, tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
