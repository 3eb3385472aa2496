package study

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the student profile collected by the intake wizard. It only
// calibrates prompt wording; nothing else depends on it.
type Profile struct {
	AcademicLevel  string `json:"academic_level" yaml:"academic_level"`
	Specialization string `json:"specialization" yaml:"specialization"`
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(content, &profile); err != nil {
		return Profile{}, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return profile, nil
}
