package inference

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the generation capabilities the study assistant
// consumes. Implementations live in subpackages; consumers receive a Client
// through construction and never reach for a global handle.
type Client interface {
	// Generate issues a single content generation request and returns the
	// produced text along with any grounding references.
	Generate(ctx context.Context, params GenerateRequest) (GenerateResponse, error)
	// ExtractSyllabus reads a syllabus image and returns its units and topics.
	ExtractSyllabus(ctx context.Context, params ExtractSyllabusRequest) (ExtractSyllabusResponse, error)
}

// GenerateRequest holds one outbound generation request.
type GenerateRequest struct {
	Instruction string          `json:"instruction"`
	Schema      *ResponseSchema `json:"schema,omitempty"`
	WebSearch   bool            `json:"web_search,omitempty"`
	Temperature float32         `json:"temperature,omitempty"`
}

// ResponseSchema constrains a generation response so it can be parsed into a
// typed entity instead of free text.
type ResponseSchema struct {
	Name       string          `json:"name"`
	Definition json.RawMessage `json:"definition"`
}

// GenerateResponse is the raw result of one generation call.
type GenerateResponse struct {
	Text       string               `json:"text"`
	References []GroundingReference `json:"references,omitempty"`
}

// GroundingReference is a citation returned when web-search-backed generation
// was used.
type GroundingReference struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ExtractSyllabusRequest carries the uploaded syllabus image.
type ExtractSyllabusRequest struct {
	Image    []byte `json:"-"`
	MIMEType string `json:"mime_type"`
}

// ExtractSyllabusResponse is the structured syllabus read from the image.
type ExtractSyllabusResponse struct {
	Units []SyllabusUnit `json:"units"`
}

// SyllabusUnit is one syllabus unit with its topics.
type SyllabusUnit struct {
	Unit   string   `json:"unit"`
	Topics []string `json:"topics"`
}

const (
	DefaultMaxRetryAttempts = 3
)
