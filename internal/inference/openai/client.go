// Package openai implements the inference.Client interface against the
// OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aknishi/studium/internal/inference"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model            string            `json:"model"`
	Messages         []Message         `json:"messages"`
	Temperature      float32           `json:"temperature,omitempty"`
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`
	WebSearchOptions *WebSearchOptions `json:"web_search_options,omitempty"`
}

type Message struct {
	Role Role `json:"role"`
	// Content is either a plain string or a []ContentPart for image inputs.
	Content any `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type ResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

type JSONSchemaFormat struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

// WebSearchOptions enables the provider-side web search tool. An empty object
// requests the default behavior.
type WebSearchOptions struct{}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Annotation struct {
	Type        string       `json:"type"`
	URLCitation *URLCitation `json:"url_citation,omitempty"`
}

type URLCitation struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Generate implements the inference.Client interface
func (client *Client) Generate(
	ctx context.Context,
	params inference.GenerateRequest,
) (inference.GenerateResponse, error) {
	var result inference.GenerateResponse
	if err := retry.Do(
		func() error {
			response, err := client.generate(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateResponse{}, &inference.TransportError{Err: err}
	}
	return result, nil
}

func (client *Client) generate(
	ctx context.Context,
	params inference.GenerateRequest,
) (inference.GenerateResponse, error) {
	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: params.Temperature,
		Messages: []Message{
			{Role: RoleUser, Content: params.Instruction},
		},
	}
	if params.Schema != nil {
		requestBody.ResponseFormat = &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchemaFormat{
				Name:   params.Schema.Name,
				Schema: params.Schema.Definition,
				Strict: true,
			},
		}
	}
	if params.WebSearch {
		requestBody.WebSearchOptions = &WebSearchOptions{}
	}

	message, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.GenerateResponse{}, err
	}

	response := inference.GenerateResponse{
		Text: message.Content,
	}
	for _, annotation := range message.Annotations {
		if annotation.Type != "url_citation" || annotation.URLCitation == nil {
			continue
		}
		response.References = append(response.References, inference.GroundingReference{
			URI:   annotation.URLCitation.URL,
			Title: annotation.URLCitation.Title,
		})
	}
	return response, nil
}

// syllabusExtractionPrompt asks the vision model for the structured syllabus.
const syllabusExtractionPrompt = `You read course syllabi from photos and scans.
Extract every unit in the attached syllabus image, in document order, together
with the topics listed under it. Use the unit headings exactly as written.
If the document has no unit structure, put all topics under a single unit
named after the course. Respond only with JSON matching the provided schema.`

var syllabusSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "units": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "unit": { "type": "string" },
          "topics": { "type": "array", "items": { "type": "string" } }
        },
        "required": ["unit", "topics"],
        "additionalProperties": false
      }
    }
  },
  "required": ["units"],
  "additionalProperties": false
}`)

// ExtractSyllabus implements the inference.Client interface
func (client *Client) ExtractSyllabus(
	ctx context.Context,
	params inference.ExtractSyllabusRequest,
) (inference.ExtractSyllabusResponse, error) {
	var result inference.ExtractSyllabusResponse
	if err := retry.Do(
		func() error {
			response, err := client.extractSyllabus(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.ExtractSyllabusResponse{}, &inference.TransportError{Err: err}
	}
	return result, nil
}

func (client *Client) extractSyllabus(
	ctx context.Context,
	params inference.ExtractSyllabusRequest,
) (inference.ExtractSyllabusResponse, error) {
	if len(params.Image) == 0 {
		return inference.ExtractSyllabusResponse{}, retry.Unrecoverable(fmt.Errorf("empty syllabus image"))
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		params.MIMEType, base64.StdEncoding.EncodeToString(params.Image))

	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{
				Role: RoleUser,
				Content: []ContentPart{
					{Type: "text", Text: syllabusExtractionPrompt},
					{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}},
				},
			},
		},
		ResponseFormat: &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchemaFormat{
				Name:   "syllabus",
				Schema: syllabusSchema,
				Strict: true,
			},
		},
	}

	message, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.ExtractSyllabusResponse{}, err
	}

	var decoded inference.ExtractSyllabusResponse
	if err := json.NewDecoder(strings.NewReader(message.Content)).Decode(&decoded); err != nil {
		slog.Default().Error("Failed to parse syllabus extraction response as JSON",
			"error", err)
		return inference.ExtractSyllabusResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", message.Content, err)
	}
	return decoded, nil
}

// complete posts one chat completion request and returns the first choice.
func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (ChoiceMessage, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return ChoiceMessage{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return ChoiceMessage{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return ChoiceMessage{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message
	if content.Content == "" {
		return ChoiceMessage{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"model", responseBody.Model,
		"totalTokens", responseBody.Usage.TotalTokens,
	)
	return content, nil
}
