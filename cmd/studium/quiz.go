package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aknishi/studium/internal/cli"
	"github.com/aknishi/studium/internal/study"
)

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz commands for testing subject knowledge",
	}

	quizCommand.AddCommand(newQuizTakeCommand())

	return quizCommand
}

func newQuizTakeCommand() *cobra.Command {
	var subject string

	command := &cobra.Command{
		Use:   "take <quiz file>",
		Short: "Take a generated quiz interactively and get study suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			quiz, err := loadQuiz(args[0])
			if err != nil {
				return err
			}

			profile, err := loadProfile(cfg)
			if err != nil {
				return err
			}

			openaiClient, err := newOpenAIClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = openaiClient.Close()
			}()

			workflow, err := newWorkflow(cfg, openaiClient)
			if err != nil {
				return err
			}

			quizCLI, err := cli.NewQuizSessionCLI(quiz, profile, subject, workflow)
			if err != nil {
				return err
			}

			fmt.Printf("Quiz session started: %s\n\n", quiz.Title)
			return quizCLI.Run(context.Background(), quizCLI)
		},
	}

	command.Flags().StringVar(&subject, "subject", "", "the subject the quiz covers")
	return command
}

func loadQuiz(path string) (study.Quiz, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return study.Quiz{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var quiz study.Quiz
	if err := json.Unmarshal(encoded, &quiz); err != nil {
		return study.Quiz{}, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return quiz, nil
}
