package content

import (
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/markdown"
	"github.com/aknishi/studium/internal/study"
)

// Result is the typed outcome of one generation request. The concrete type
// depends on the requested format; consumers type-switch over the three
// variants instead of sniffing the raw response.
type Result interface {
	resultKind() string
}

// ProseResult is free-text output rendered into display blocks.
type ProseResult struct {
	Text       string                         `json:"text"`
	Blocks     []markdown.Block               `json:"blocks"`
	References []inference.GroundingReference `json:"references,omitempty"`
}

func (ProseResult) resultKind() string { return "prose" }

// FlashcardSetResult is a generated flashcard deck.
type FlashcardSetResult struct {
	Cards []study.Flashcard `json:"cards"`
}

func (FlashcardSetResult) resultKind() string { return "flashcards" }

// QuizResult is a generated interactive quiz.
type QuizResult struct {
	Quiz study.Quiz `json:"quiz"`
}

func (QuizResult) resultKind() string { return "quiz" }
