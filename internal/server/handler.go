package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/markdown"
	"github.com/aknishi/studium/internal/session"
	"github.com/aknishi/studium/internal/study"
)

const maxSyllabusImageBytes = 10 << 20

// Handler serves the JSON API the browser UI talks to. It owns no state of
// its own; everything session scoped lives in the session manager.
type Handler struct {
	sessions *session.Manager
	workflow *content.Workflow
	client   inference.Client
	logger   *slog.Logger
}

func NewHandler(sessions *session.Manager, workflow *content.Workflow, client inference.Client, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		workflow: workflow,
		client:   client,
		logger:   logger,
	}
}

// Register wires every API route onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/formats", h.listFormats)
	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("POST /api/sessions/{id}/syllabus", h.uploadSyllabus)
	mux.HandleFunc("PUT /api/sessions/{id}/selection", h.setSelection)
	mux.HandleFunc("POST /api/sessions/{id}/generate", h.generate)
	mux.HandleFunc("POST /api/sessions/{id}/grade", h.gradeQuiz)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]content.Format{
		"formats": content.Formats(),
	})
}

type createSessionRequest struct {
	Profile study.Profile `json:"profile"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Profile.AcademicLevel) == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("profile.academic_level is required"))
		return
	}

	id := h.sessions.Create(req.Profile)
	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: id})
}

type sessionResponse struct {
	SessionID string                   `json:"session_id"`
	Profile   study.Profile            `json:"profile"`
	Subject   string                   `json:"subject,omitempty"`
	Units     []inference.SyllabusUnit `json:"units,omitempty"`
	Selection study.TopicSelection     `json:"selection"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: state.ID,
		Profile:   state.Profile,
		Subject:   state.Subject,
		Units:     state.Units,
		Selection: state.Selection,
	})
}

type uploadSyllabusResponse struct {
	Subject string                   `json:"subject"`
	Units   []inference.SyllabusUnit `json:"units"`
}

func (h *Handler) uploadSyllabus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.sessions.Get(id); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	if err := r.ParseMultipartForm(maxSyllabusImageBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	subject := strings.TrimSpace(r.FormValue("subject"))
	if subject == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("subject is required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("a syllabus image is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	image, err := io.ReadAll(io.LimitReader(file, maxSyllabusImageBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read the uploaded image: %w", err))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}

	extracted, err := h.client.ExtractSyllabus(r.Context(), inference.ExtractSyllabusRequest{
		Image:    image,
		MIMEType: mimeType,
	})
	if err != nil {
		h.writeInferenceError(w, err)
		return
	}

	if err := h.sessions.SetSubject(id, subject, extracted.Units); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadSyllabusResponse{Subject: subject, Units: extracted.Units})
}

type setSelectionRequest struct {
	Unit   string   `json:"unit"`
	Topics []string `json:"topics"`
}

func (h *Handler) setSelection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req setSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Unit != "" && len(req.Topics) > 0 {
		h.writeError(w, http.StatusBadRequest, errors.New("select either a unit or topics, not both"))
		return
	}

	var selection study.TopicSelection
	if req.Unit != "" {
		selection.SelectUnit(req.Unit)
	}
	for _, topic := range req.Topics {
		if err := selection.SelectTopic(topic); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if err := h.sessions.SetSelection(id, selection); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, selection)
}

type generateRequest struct {
	Format         string `json:"format"`
	Source         string `json:"source"`
	DocumentName   string `json:"document_name,omitempty"`
	Link           string `json:"link,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	PreviousResult string `json:"previous_result,omitempty"`
}

type generateResponse struct {
	Kind       string                         `json:"kind"`
	Text       string                         `json:"text,omitempty"`
	Blocks     []markdown.Block               `json:"blocks,omitempty"`
	References []inference.GroundingReference `json:"references,omitempty"`
	Flashcards []study.Flashcard              `json:"flashcards,omitempty"`
	Quiz       *study.Quiz                    `json:"quiz,omitempty"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	state, err := h.sessions.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	format, err := content.ParseFormat(req.Format)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := h.sessions.BeginGeneration(id)
	if err != nil {
		if errors.Is(err, session.ErrGenerationInFlight) {
			h.writeError(w, http.StatusConflict, err)
			return
		}
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	result, err := h.workflow.Generate(r.Context(), content.Request{
		Profile:        state.Profile,
		Subject:        state.Subject,
		Selection:      state.Selection,
		Format:         format,
		Source:         content.Source(req.Source),
		DocumentName:   req.DocumentName,
		Link:           req.Link,
		Feedback:       req.Feedback,
		PreviousResult: req.PreviousResult,
	})
	if err != nil {
		if abandonErr := h.sessions.AbandonGeneration(id, token); abandonErr != nil {
			h.logger.Warn("failed to release the generation slot", "error", abandonErr)
		}
		h.writeInferenceError(w, err)
		return
	}

	applied, err := h.sessions.CompleteGeneration(id, token, format, result)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	if !applied {
		h.logger.Info("discarded a stale generation result", "session_id", id)
		h.writeError(w, http.StatusConflict, errors.New("a newer generation superseded this request"))
		return
	}

	writeJSON(w, http.StatusOK, toGenerateResponse(result))
}

func toGenerateResponse(result content.Result) generateResponse {
	switch typed := result.(type) {
	case content.ProseResult:
		return generateResponse{
			Kind:       "prose",
			Text:       typed.Text,
			Blocks:     typed.Blocks,
			References: typed.References,
		}
	case content.FlashcardSetResult:
		return generateResponse{Kind: "flashcards", Flashcards: typed.Cards}
	case content.QuizResult:
		quiz := typed.Quiz
		return generateResponse{Kind: "quiz", Quiz: &quiz}
	default:
		return generateResponse{Kind: "prose"}
	}
}

type gradeRequest struct {
	Answers map[string][]string `json:"answers"`
}

type gradeResponse struct {
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Incorrect   []study.Question `json:"incorrect"`
	Suggestions string           `json:"suggestions,omitempty"`
}

func (h *Handler) gradeQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	state, err := h.sessions.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	quizResult, ok := state.LastResult.(content.QuizResult)
	if !ok {
		h.writeError(w, http.StatusBadRequest, errors.New("the session has no quiz to grade"))
		return
	}

	answers := make(map[int][]string, len(req.Answers))
	for key, value := range req.Answers {
		index, err := strconv.Atoi(key)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid question index %q", key))
			return
		}
		answers[index] = value
	}

	graded := study.Grade(quizResult.Quiz, answers)

	suggestions, err := h.workflow.Suggestions(r.Context(), state.Profile, state.Subject, graded)
	if err != nil {
		h.logger.Warn("remediation suggestions failed", "session_id", id, "error", err)
		suggestions = content.FallbackSuggestionsMessage
	}

	writeJSON(w, http.StatusOK, gradeResponse{
		Score:       graded.Score,
		Total:       len(quizResult.Quiz.Questions),
		Incorrect:   graded.Incorrect,
		Suggestions: suggestions,
	})
}

// writeInferenceError maps the error taxonomy onto status codes. Validation
// failures are the caller's fault; transport and schema failures are upstream
// problems surfaced as a bad gateway.
func (h *Handler) writeInferenceError(w http.ResponseWriter, err error) {
	var validationErr *content.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var schemaErr *content.SchemaError
	var transportErr *inference.TransportError
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &transportErr):
		h.writeError(w, http.StatusBadGateway, err)
	default:
		h.writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
