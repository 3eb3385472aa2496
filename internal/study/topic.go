package study

import (
	"errors"
	"slices"
	"strings"
)

// MaxSelectedTopics caps how many individual topics can be studied at once.
const MaxSelectedTopics = 3

// ErrTooManyTopics is returned when a selection already holds the maximum
// number of topics; the existing selection is left unchanged.
var ErrTooManyTopics = errors.New("at most 3 topics can be selected")

// TopicSelection is the user's choice of either one syllabus unit or up to
// three individual topics. The two modes are mutually exclusive: selecting a
// unit clears the topics and selecting a topic clears the unit.
type TopicSelection struct {
	Unit   string   `json:"unit,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// SelectUnit switches the selection to a whole unit.
func (s *TopicSelection) SelectUnit(unit string) {
	s.Unit = unit
	s.Topics = nil
}

// SelectTopic adds an individual topic, dropping any selected unit. Selecting
// an already-selected topic is a no-op.
func (s *TopicSelection) SelectTopic(topic string) error {
	if s.Unit != "" {
		s.Unit = ""
		s.Topics = nil
	}
	if slices.Contains(s.Topics, topic) {
		return nil
	}
	if len(s.Topics) >= MaxSelectedTopics {
		return ErrTooManyTopics
	}
	s.Topics = append(s.Topics, topic)
	return nil
}

// DeselectTopic removes a topic from the selection if present.
func (s *TopicSelection) DeselectTopic(topic string) {
	s.Topics = slices.DeleteFunc(s.Topics, func(t string) bool {
		return t == topic
	})
}

// IsEmpty reports whether nothing has been selected yet.
func (s TopicSelection) IsEmpty() bool {
	return s.Unit == "" && len(s.Topics) == 0
}

// Describe renders the selection for prompt interpolation: the unit name when
// a unit is selected, otherwise the comma-joined topic names.
func (s TopicSelection) Describe() string {
	if s.Unit != "" {
		return s.Unit
	}
	return strings.Join(s.Topics, ", ")
}
