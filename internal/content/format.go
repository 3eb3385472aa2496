// Package content maps content formats to generation instruction templates
// and orchestrates generation requests into typed results.
package content

import (
	"fmt"
	"text/template"

	"github.com/aknishi/studium/internal/assets"
	"github.com/aknishi/studium/internal/inference"
)

// Format is the label of a requested content format. Every format has exactly
// one instruction template; Flashcards and Interactive Quiz additionally
// carry a structured-output schema.
type Format string

const (
	FormatInDepthExplanation Format = "In-depth Explanation"
	FormatSimpleExplanation  Format = "Simple Explanation"
	FormatOverview           Format = "Overview"
	FormatKeyTakeaways       Format = "Key Takeaways"
	FormatStudyNotes         Format = "Study Notes"
	FormatFlashcards         Format = "Flashcards"
	FormatRealWorldExamples  Format = "Real-World Examples"
	FormatCaseStudies        Format = "Case Studies"
	FormatInteractiveQuiz    Format = "Interactive Quiz"
)

// Formats returns all known formats in presentation order.
func Formats() []Format {
	return []Format{
		FormatInDepthExplanation,
		FormatSimpleExplanation,
		FormatOverview,
		FormatKeyTakeaways,
		FormatStudyNotes,
		FormatFlashcards,
		FormatRealWorldExamples,
		FormatCaseStudies,
		FormatInteractiveQuiz,
	}
}

// ParseFormat resolves a format label submitted by the UI.
func ParseFormat(label string) (Format, error) {
	for _, format := range Formats() {
		if string(format) == label {
			return format, nil
		}
	}
	return "", &ValidationError{Message: fmt.Sprintf("unknown content format %q", label)}
}

type registryEntry struct {
	templateName string
	schema       *inference.ResponseSchema
}

// Registry holds the finite format-to-template mapping. It is built once at
// startup and checked for completeness so a missing entry fails construction
// instead of falling through at request time.
type Registry struct {
	templates *template.Template
	entries   map[Format]registryEntry
}

// NewRegistry parses the prompt templates (optionally overridden from
// templateDir) and verifies that every format has a template.
func NewRegistry(templateDir string) (*Registry, error) {
	templates, err := assets.ParsePromptTemplates(templateDir)
	if err != nil {
		return nil, fmt.Errorf("assets.ParsePromptTemplates() > %w", err)
	}

	entries := map[Format]registryEntry{
		FormatInDepthExplanation: {templateName: "in_depth_explanation.md.go.tmpl"},
		FormatSimpleExplanation:  {templateName: "simple_explanation.md.go.tmpl"},
		FormatOverview:           {templateName: "overview.md.go.tmpl"},
		FormatKeyTakeaways:       {templateName: "key_takeaways.md.go.tmpl"},
		FormatStudyNotes:         {templateName: "study_notes.md.go.tmpl"},
		FormatFlashcards: {
			templateName: "flashcards.md.go.tmpl",
			schema: &inference.ResponseSchema{
				Name:       "flashcards",
				Definition: assets.FlashcardsSchema,
			},
		},
		FormatRealWorldExamples: {templateName: "real_world_examples.md.go.tmpl"},
		FormatCaseStudies:       {templateName: "case_studies.md.go.tmpl"},
		FormatInteractiveQuiz: {
			templateName: "interactive_quiz.md.go.tmpl",
			schema: &inference.ResponseSchema{
				Name:       "quiz",
				Definition: assets.QuizSchema,
			},
		},
	}

	for _, format := range Formats() {
		entry, ok := entries[format]
		if !ok {
			return nil, fmt.Errorf("format %q has no registry entry", format)
		}
		if templates.Lookup(entry.templateName) == nil {
			return nil, fmt.Errorf("format %q: template %q not found", format, entry.templateName)
		}
	}
	for _, name := range []string{"refinement.md.go.tmpl", "remediation.md.go.tmpl"} {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not found", name)
		}
	}

	return &Registry{
		templates: templates,
		entries:   entries,
	}, nil
}

// Schema returns the structured-output schema for format, or nil for
// free-text formats.
func (r *Registry) Schema(format Format) *inference.ResponseSchema {
	return r.entries[format].schema
}
