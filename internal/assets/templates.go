// Package assets embeds the prompt templates and structured-output schemas
// used to build generation requests.
package assets

import (
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.go.tmpl
var promptTemplates embed.FS

// FlashcardsSchema is the structured-output schema for flashcard generation.
//
//go:embed schemas/flashcards.json
var FlashcardsSchema []byte

// QuizSchema is the structured-output schema for quiz generation.
//
//go:embed schemas/quiz.json
var QuizSchema []byte

// ParsePromptTemplates parses the embedded prompt templates. When overrideDir
// is non-empty and contains template files, those are parsed instead; if they
// fail to parse, a warning is logged and the embedded set is used.
func ParsePromptTemplates(overrideDir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if overrideDir != "" {
		pattern := filepath.Join(overrideDir, "*.go.tmpl")
		matches, _ := filepath.Glob(pattern)
		if len(matches) > 0 {
			tmpl, err := template.New("prompts").Funcs(funcMap).ParseGlob(pattern)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse prompt template overrides",
				slog.String("overrideDir", overrideDir),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New("prompts").Funcs(funcMap).ParseFS(promptTemplates, "templates/*.go.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return tmpl, nil
}
