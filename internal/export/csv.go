package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/aknishi/studium/internal/study"
)

// WriteFlashcardsCSV writes a deck as a two-column CSV file so it can be
// imported into external flashcard applications.
func WriteFlashcardsCSV(path string, deck []study.Flashcard) error {
	if len(deck) == 0 {
		return fmt.Errorf("the deck is empty")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"question", "answer"}); err != nil {
		return fmt.Errorf("writer.Write() > %w", err)
	}
	for _, card := range deck {
		if err := writer.Write([]string{card.Question, card.Answer}); err != nil {
			return fmt.Errorf("writer.Write() > %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush() > %w", err)
	}
	return nil
}

// WritePlanCSV writes a study plan as a CSV file with calendar dates resolved
// against the given start date.
func WritePlanCSV(path string, entries []study.PlanEntry, start time.Time) error {
	if len(entries) == 0 {
		return fmt.Errorf("the study plan is empty")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"date", "topic", "activity"}); err != nil {
		return fmt.Errorf("writer.Write() > %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.Date(start).Format(time.DateOnly),
			entry.Topic,
			entry.Activity,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writer.Write() > %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush() > %w", err)
	}
	return nil
}
