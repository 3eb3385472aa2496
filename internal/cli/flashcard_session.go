package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/aknishi/studium/internal/study"
)

// FlashcardTestCLI manages an interactive flashcard test session over a deck.
type FlashcardTestCLI struct {
	*InteractiveCLI
	deckName string
	state    *study.TestState
}

// NewFlashcardTestCLI creates a flashcard test session for a deck file.
func NewFlashcardTestCLI(deckName string, deckPath string) (*FlashcardTestCLI, error) {
	deck, err := study.LoadDeck(deckPath)
	if err != nil {
		return nil, fmt.Errorf("study.LoadDeck(%s) > %w", deckPath, err)
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("the deck %s has no flashcards", deckName)
	}

	return &FlashcardTestCLI{
		InteractiveCLI: newInteractiveCLI(),
		deckName:       deckName,
		state:          study.NewTestState(deck, nil),
	}, nil
}

func (r *FlashcardTestCLI) Session(ctx context.Context) error {
	card, ok := r.state.Current()
	if !ok {
		fmt.Fprintf(r.stdoutWriter, "All %d cards mastered. Well done!\n", r.state.MasteredCount())
		return errEnd
	}

	fmt.Fprintf(r.stdoutWriter, "[%d to go, %d mastered]\n",
		r.state.PendingCount(), r.state.MasteredCount())
	_, _ = r.bold.Fprintf(r.stdoutWriter, "Q: %s\n", card.Question)
	fmt.Fprint(r.stdoutWriter, "Press Enter to reveal the answer...")
	if _, err := r.readLine(); err != nil {
		return err
	}

	r.state.Reveal()
	_, _ = r.italic.Fprintf(r.stdoutWriter, "A: %s\n", card.Answer)

	fmt.Fprint(r.stdoutWriter, "Did you know it? [y/n]: ")
	answer, err := r.readLine()
	if err != nil {
		return err
	}

	switch answer {
	case "y", "Y", "yes":
		if err := r.state.MarkKnown(); err != nil {
			return fmt.Errorf("state.MarkKnown() > %w", err)
		}
		fmt.Fprint(r.stdoutWriter, "✅ ")
		color.Green("Marked as known.")
	default:
		if err := r.state.MarkNeedsReview(); err != nil {
			return fmt.Errorf("state.MarkNeedsReview() > %w", err)
		}
		fmt.Fprint(r.stdoutWriter, "❌ ")
		color.Red("It will come back later in this session.")
	}
	fmt.Fprintln(r.stdoutWriter)

	return nil
}
