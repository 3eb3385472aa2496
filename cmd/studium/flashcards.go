package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aknishi/studium/internal/cli"
	"github.com/aknishi/studium/internal/export"
	"github.com/aknishi/studium/internal/study"
)

func newFlashcardsCommand() *cobra.Command {
	flashcardsCommand := &cobra.Command{
		Use:   "flashcards",
		Short: "Flashcard commands for testing and exporting decks",
	}

	flashcardsCommand.AddCommand(newFlashcardsTestCommand())
	flashcardsCommand.AddCommand(newFlashcardsExportCommand())

	return flashcardsCommand
}

func newFlashcardsTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <deck file>",
		Short: "Run an interactive test session over a flashcard deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]
			deckName := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))

			flashcardCLI, err := cli.NewFlashcardTestCLI(deckName, deckPath)
			if err != nil {
				return err
			}

			fmt.Println("Flashcard test session started!")
			fmt.Println("Cards you miss come back later in the session.")
			fmt.Println()
			return flashcardCLI.Run(context.Background(), flashcardCLI)
		},
	}
}

func newFlashcardsExportCommand() *cobra.Command {
	var output string

	command := &cobra.Command{
		Use:   "export <deck file>",
		Short: "Export a flashcard deck as a two-column CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]
			deck, err := study.LoadDeck(deckPath)
			if err != nil {
				return fmt.Errorf("study.LoadDeck(%s) > %w", deckPath, err)
			}

			if output == "" {
				output = strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ".csv"
			}
			if err := export.WriteFlashcardsCSV(output, deck); err != nil {
				return fmt.Errorf("export.WriteFlashcardsCSV(%s) > %w", output, err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	command.Flags().StringVar(&output, "output", "", "path of the CSV file to write")
	return command
}
