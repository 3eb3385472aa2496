package study

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PlanEntry is one row of a study plan: an activity scheduled a number of
// days after the plan's start date.
type PlanEntry struct {
	DayOffset int    `json:"day_offset" yaml:"day_offset"`
	Topic     string `json:"topic" yaml:"topic"`
	Activity  string `json:"activity" yaml:"activity"`
}

// Date resolves the entry's calendar date from the plan's start date.
func (e PlanEntry) Date(start time.Time) time.Time {
	return start.AddDate(0, 0, e.DayOffset)
}

// LoadPlan reads study plan entries from a YAML file.
func LoadPlan(path string) ([]PlanEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var entries []PlanEntry
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return entries, nil
}
