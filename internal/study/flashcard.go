// Package study holds the session-scoped learning domain: flashcard decks and
// the spaced-repetition test driver, quizzes and their grading, topic
// selection and the student profile.
package study

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Flashcard is a single question/answer pair. Cards are immutable once
// generated; the test driver only reorders and partitions them.
type Flashcard struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// LoadDeck reads a flashcard deck from a YAML file.
func LoadDeck(path string) ([]Flashcard, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var deck []Flashcard
	if err := yaml.Unmarshal(content, &deck); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return deck, nil
}

var (
	// ErrAnswerHidden is returned when a card is graded before being revealed.
	ErrAnswerHidden = errors.New("answer has not been revealed yet")
	// ErrTestComplete is returned when no pending cards remain.
	ErrTestComplete = errors.New("all cards are mastered")
)

// TestState drives a flashcard self-test. Every card of the original deck is
// in exactly one of pending or mastered at all times.
type TestState struct {
	pending        []Flashcard
	mastered       []Flashcard
	currentIndex   int
	answerRevealed bool
	rng            *rand.Rand
}

// NewTestState starts a test over a copy of deck, shuffled into a uniform
// random order. rng may be nil, in which case a time-seeded source is used;
// tests pass a fixed seed instead.
func NewTestState(deck []Flashcard, rng *rand.Rand) *TestState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pending := make([]Flashcard, len(deck))
	copy(pending, deck)
	rng.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	return &TestState{
		pending: pending,
		rng:     rng,
	}
}

// Current returns the card under test, or false once the test is complete.
func (s *TestState) Current() (Flashcard, bool) {
	if len(s.pending) == 0 {
		return Flashcard{}, false
	}
	return s.pending[s.currentIndex], true
}

// Reveal shows the answer for the current card.
func (s *TestState) Reveal() {
	if len(s.pending) > 0 {
		s.answerRevealed = true
	}
}

// Revealed reports whether the current card's answer is visible.
func (s *TestState) Revealed() bool {
	return s.answerRevealed
}

// MarkKnown moves the current card from pending to mastered. Only valid once
// the answer has been revealed.
func (s *TestState) MarkKnown() error {
	if len(s.pending) == 0 {
		return ErrTestComplete
	}
	if !s.answerRevealed {
		return ErrAnswerHidden
	}

	card := s.pending[s.currentIndex]
	s.pending = append(s.pending[:s.currentIndex], s.pending[s.currentIndex+1:]...)
	s.mastered = append(s.mastered, card)

	if s.currentIndex >= len(s.pending) {
		s.currentIndex = 0
	}
	s.answerRevealed = false
	return nil
}

// MarkNeedsReview keeps the current card in pending but reinserts it at a
// random position within the later half of the remaining cards, so the retest
// happens further away instead of immediately next.
func (s *TestState) MarkNeedsReview() error {
	if len(s.pending) == 0 {
		return ErrTestComplete
	}
	if !s.answerRevealed {
		return ErrAnswerHidden
	}

	card := s.pending[s.currentIndex]
	rest := append(s.pending[:s.currentIndex:s.currentIndex], s.pending[s.currentIndex+1:]...)

	position := 0
	if len(rest) > 0 {
		half := len(rest) / 2
		position = half + s.rng.Intn(len(rest)-half)
	}

	s.pending = make([]Flashcard, 0, len(rest)+1)
	s.pending = append(s.pending, rest[:position]...)
	s.pending = append(s.pending, card)
	s.pending = append(s.pending, rest[position:]...)

	if s.currentIndex >= len(s.pending) {
		s.currentIndex = 0
	}
	s.answerRevealed = false
	return nil
}

// Completed reports whether every card has been mastered.
func (s *TestState) Completed() bool {
	return len(s.pending) == 0
}

// PendingCount returns the number of cards still under test.
func (s *TestState) PendingCount() int {
	return len(s.pending)
}

// MasteredCount returns the number of mastered cards.
func (s *TestState) MasteredCount() int {
	return len(s.mastered)
}

// Pending returns a copy of the pending cards in their current order.
func (s *TestState) Pending() []Flashcard {
	out := make([]Flashcard, len(s.pending))
	copy(out, s.pending)
	return out
}

// Mastered returns a copy of the mastered cards in mastering order.
func (s *TestState) Mastered() []Flashcard {
	out := make([]Flashcard, len(s.mastered))
	copy(out, s.mastered)
	return out
}
