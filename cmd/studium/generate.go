package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/export"
)

func newGenerateCommand() *cobra.Command {
	var (
		subject   string
		unit      string
		topics    []string
		link      string
		outputPDF bool
	)

	command := &cobra.Command{
		Use:   "generate <format>",
		Short: "Generate study content in one of the supported formats",
		Long: fmt.Sprintf("Generate study content in one of the supported formats.\n\nFormats: %s",
			joinFormats()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			format, err := content.ParseFormat(args[0])
			if err != nil {
				return err
			}

			selection, err := buildSelection(unit, topics)
			if err != nil {
				return err
			}

			profile, err := loadProfile(cfg)
			if err != nil {
				return err
			}

			openaiClient, err := newOpenAIClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = openaiClient.Close()
			}()

			workflow, err := newWorkflow(cfg, openaiClient)
			if err != nil {
				return err
			}

			request := content.Request{
				Profile:   profile,
				Subject:   subject,
				Selection: selection,
				Format:    format,
				Source:    content.SourceGeneral,
			}
			if link != "" {
				request.Source = content.SourceLink
				request.Link = link
			}

			fmt.Printf("Generating %s with model %s...\n", format, cfg.OpenAI.Model)
			result, err := workflow.Generate(context.Background(), request)
			if err != nil {
				return fmt.Errorf("workflow.Generate() > %w", err)
			}

			if err := os.MkdirAll(cfg.Outputs.Directory, 0o755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", cfg.Outputs.Directory, err)
			}

			path, err := writeResult(cfg.Outputs.Directory, subject, format, result, outputPDF)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&subject, "subject", "", "the subject to study")
	flags.StringVar(&unit, "unit", "", "generate for a whole syllabus unit")
	flags.StringSliceVar(&topics, "topic", nil, "generate for specific topics (up to 3)")
	flags.StringVar(&link, "link", "", "use the content behind a link as the primary source")
	flags.BoolVar(&outputPDF, "pdf", false, "also write prose content as a PDF")
	_ = command.MarkFlagRequired("subject")

	return command
}

func joinFormats() string {
	labels := make([]string, 0, len(content.Formats()))
	for _, format := range content.Formats() {
		labels = append(labels, string(format))
	}
	return strings.Join(labels, ", ")
}

// writeResult stores a generation result under the outputs directory. Prose
// becomes markdown (optionally with a PDF next to it), flashcards become a
// deck file usable by "flashcards test", and a quiz becomes a file usable by
// "quiz take".
func writeResult(outputsDir string, subject string, format content.Format, result content.Result, outputPDF bool) (string, error) {
	base := outputFileBase(subject, format)

	switch typed := result.(type) {
	case content.FlashcardSetResult:
		path := filepath.Join(outputsDir, base+".yaml")
		encoded, err := yaml.Marshal(typed.Cards)
		if err != nil {
			return "", fmt.Errorf("yaml.Marshal() > %w", err)
		}
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		return path, nil

	case content.QuizResult:
		path := filepath.Join(outputsDir, base+".json")
		encoded, err := json.MarshalIndent(typed.Quiz, "", "  ")
		if err != nil {
			return "", fmt.Errorf("json.MarshalIndent() > %w", err)
		}
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		return path, nil

	case content.ProseResult:
		path := filepath.Join(outputsDir, base+".md")
		if outputPDF {
			pdfPath, err := export.WriteContentPDF(path, typed.Text)
			if err != nil {
				return "", fmt.Errorf("export.WriteContentPDF() > %w", err)
			}
			return pdfPath, nil
		}
		if err := os.WriteFile(path, []byte(typed.Text), 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		return path, nil

	default:
		return "", fmt.Errorf("unsupported result type %T", result)
	}
}

func outputFileBase(subject string, format content.Format) string {
	slug := func(s string) string {
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "-")
		return s
	}
	return slug(subject) + "_" + slug(string(format))
}
