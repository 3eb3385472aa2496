package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/markdown"
	"github.com/aknishi/studium/internal/study"
)

// Source selects where the content should be grounded.
type Source string

const (
	// SourceGeneral generates from the model's own knowledge.
	SourceGeneral Source = "general"
	// SourceDocument references an uploaded document by name.
	SourceDocument Source = "document"
	// SourceLink asks the backend to resolve an external link via web search.
	SourceLink Source = "link"
)

const defaultTemperature = 0.7

// FallbackSuggestionsMessage replaces study suggestions when the best-effort
// remediation call fails.
const FallbackSuggestionsMessage = "Could not generate study suggestions. Review the explanations for the questions you missed and try them again."

// Request describes one content generation the user asked for.
type Request struct {
	Profile   study.Profile
	Subject   string
	Selection study.TopicSelection
	Format    Format
	Source    Source
	// DocumentName names the attached document when Source is SourceDocument.
	DocumentName string
	// Link is the external URL when Source is SourceLink.
	Link string
	// Feedback switches the request into refinement mode: the previous result
	// is regenerated wholesale instead of applying a format template.
	Feedback       string
	PreviousResult string
}

// Workflow turns requests into outbound generation calls and routes the typed
// response into the correct result variant.
type Workflow struct {
	registry *Registry
	client   inference.Client
}

func NewWorkflow(registry *Registry, client inference.Client) *Workflow {
	return &Workflow{
		registry: registry,
		client:   client,
	}
}

type promptData struct {
	Subject        string
	Scope          string
	AcademicLevel  string
	Specialization string
}

// BuildRequest validates the request and produces exactly one outbound
// request descriptor. Validation failures never reach the network.
func (w *Workflow) BuildRequest(req Request) (inference.GenerateRequest, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return inference.GenerateRequest{}, &ValidationError{Message: "subject is required"}
	}
	if req.Selection.IsEmpty() {
		return inference.GenerateRequest{}, &ValidationError{Message: "select a unit or at least one topic"}
	}
	if _, ok := w.registry.entries[req.Format]; !ok {
		return inference.GenerateRequest{}, &ValidationError{Message: fmt.Sprintf("unknown content format %q", req.Format)}
	}

	var instruction string
	if req.Feedback != "" {
		rendered, err := w.renderTemplate("refinement.md.go.tmpl", struct {
			Feedback       string
			PreviousResult string
		}{
			Feedback:       req.Feedback,
			PreviousResult: req.PreviousResult,
		})
		if err != nil {
			return inference.GenerateRequest{}, err
		}
		instruction = rendered
	} else {
		rendered, err := w.renderTemplate(w.registry.entries[req.Format].templateName, promptData{
			Subject:        req.Subject,
			Scope:          req.Selection.Describe(),
			AcademicLevel:  req.Profile.AcademicLevel,
			Specialization: req.Profile.Specialization,
		})
		if err != nil {
			return inference.GenerateRequest{}, err
		}
		instruction = rendered
	}

	webSearch := false
	switch req.Source {
	case SourceDocument:
		instruction = fmt.Sprintf("Use the attached document %q as the primary source.\n\n%s", req.DocumentName, instruction)
	case SourceLink:
		webSearch = true
		instruction = fmt.Sprintf("%s\n\nResolve the following link and use its content as the primary source: %s", instruction, req.Link)
	}

	return inference.GenerateRequest{
		Instruction: instruction,
		Schema:      w.registry.Schema(req.Format),
		WebSearch:   webSearch,
		Temperature: defaultTemperature,
	}, nil
}

// Generate issues the request and parses the response into the result variant
// for the requested format.
func (w *Workflow) Generate(ctx context.Context, req Request) (Result, error) {
	generateRequest, err := w.BuildRequest(req)
	if err != nil {
		return nil, err
	}

	response, err := w.client.Generate(ctx, generateRequest)
	if err != nil {
		return nil, fmt.Errorf("client.Generate() > %w", err)
	}

	return w.parseResponse(req.Format, response)
}

func (w *Workflow) parseResponse(format Format, response inference.GenerateResponse) (Result, error) {
	switch format {
	case FormatFlashcards:
		var decoded struct {
			Flashcards []study.Flashcard `json:"flashcards"`
		}
		if err := json.Unmarshal([]byte(response.Text), &decoded); err != nil {
			return nil, &SchemaError{Format: format, Err: err}
		}
		if len(decoded.Flashcards) == 0 {
			return nil, &SchemaError{Format: format, Err: fmt.Errorf("response contains no flashcards")}
		}
		return FlashcardSetResult{Cards: decoded.Flashcards}, nil

	case FormatInteractiveQuiz:
		var quiz study.Quiz
		if err := json.Unmarshal([]byte(response.Text), &quiz); err != nil {
			return nil, &SchemaError{Format: format, Err: err}
		}
		if err := quiz.Validate(); err != nil {
			return nil, &SchemaError{Format: format, Err: err}
		}
		return QuizResult{Quiz: quiz}, nil

	default:
		return ProseResult{
			Text:       response.Text,
			Blocks:     markdown.Render(response.Text),
			References: response.References,
		}, nil
	}
}

// Suggestions issues the best-effort remediation request for the questions
// missed in a graded quiz. Callers substitute FallbackSuggestionsMessage when
// it fails; the already-computed grade is unaffected either way.
func (w *Workflow) Suggestions(ctx context.Context, profile study.Profile, subject string, graded study.GradeResult) (string, error) {
	if len(graded.Incorrect) == 0 {
		return "", nil
	}

	instruction, err := w.renderTemplate("remediation.md.go.tmpl", struct {
		AcademicLevel string
		Subject       string
		Missed        []study.Question
	}{
		AcademicLevel: profile.AcademicLevel,
		Subject:       subject,
		Missed:        graded.Incorrect,
	})
	if err != nil {
		return "", err
	}

	response, err := w.client.Generate(ctx, inference.GenerateRequest{
		Instruction: instruction,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("client.Generate() > %w", err)
	}
	return response.Text, nil
}

func (w *Workflow) renderTemplate(name string, data any) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if err := w.registry.templates.ExecuteTemplate(buffer, name, data); err != nil {
		return "", fmt.Errorf("templates.ExecuteTemplate(%s) > %w", name, err)
	}
	return buffer.String(), nil
}
