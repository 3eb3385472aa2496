// Package markdown renders the constrained markdown subset produced by the
// generation backend into a flat block sequence the UI can display.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

type BlockType string

const (
	BlockHeading       BlockType = "heading"
	BlockParagraph     BlockType = "paragraph"
	BlockUnorderedList BlockType = "unordered_list"
	BlockOrderedList   BlockType = "ordered_list"
	BlockCode          BlockType = "code"
)

// Block is a single rendered block. Text holds inline-formatted content for
// headings and paragraphs, Items for list blocks and Code for code blocks.
type Block struct {
	Type  BlockType `json:"type"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
	Code  string    `json:"code,omitempty"`
}

var (
	strongPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	emphasisPattern = regexp.MustCompile(`\*([^*]+)\*`)
	orderedPattern  = regexp.MustCompile(`^\d+\. `)
)

// renderInline escapes the raw text and then substitutes the two supported
// emphasis constructs. Strong spans are resolved first so their markers are
// not consumed by the single-marker pass.
func renderInline(text string) string {
	escaped := html.EscapeString(text)
	escaped = strongPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	return emphasisPattern.ReplaceAllString(escaped, "<em>$1</em>")
}

type renderState struct {
	blocks    []Block
	listType  BlockType
	listItems []string
	inFence   bool
	codeLines []string
}

func (s *renderState) flushList() {
	if s.listType == "" {
		return
	}
	s.blocks = append(s.blocks, Block{Type: s.listType, Items: s.listItems})
	s.listType = ""
	s.listItems = nil
}

func (s *renderState) flushCode() {
	s.blocks = append(s.blocks, Block{Type: BlockCode, Code: strings.Join(s.codeLines, "\n")})
	s.codeLines = nil
}

func (s *renderState) appendListItem(listType BlockType, item string) {
	if s.listType != listType {
		s.flushList()
		s.listType = listType
	}
	s.listItems = append(s.listItems, renderInline(item))
}

// Render converts input into an ordered block sequence in a single forward
// pass. It is pure: identical input always yields an identical result.
func Render(input string) []Block {
	state := &renderState{}

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if state.inFence {
				state.inFence = false
				state.flushCode()
			} else {
				state.flushList()
				state.inFence = true
			}
			continue
		}

		if state.inFence {
			// Inside a fence every line is literal, block markers included.
			state.codeLines = append(state.codeLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "### "):
			state.flushList()
			state.blocks = append(state.blocks, Block{Type: BlockHeading, Level: 3, Text: renderInline(trimmed[4:])})
		case strings.HasPrefix(trimmed, "## "):
			state.flushList()
			state.blocks = append(state.blocks, Block{Type: BlockHeading, Level: 2, Text: renderInline(trimmed[3:])})
		case strings.HasPrefix(trimmed, "# "):
			state.flushList()
			state.blocks = append(state.blocks, Block{Type: BlockHeading, Level: 1, Text: renderInline(trimmed[2:])})
		case strings.HasPrefix(trimmed, "- "):
			state.appendListItem(BlockUnorderedList, trimmed[2:])
		case strings.HasPrefix(trimmed, "* "):
			state.appendListItem(BlockUnorderedList, trimmed[2:])
		case orderedPattern.MatchString(trimmed):
			marker := orderedPattern.FindString(trimmed)
			state.appendListItem(BlockOrderedList, trimmed[len(marker):])
		case trimmed == "":
			state.flushList()
		default:
			state.flushList()
			state.blocks = append(state.blocks, Block{Type: BlockParagraph, Text: renderInline(trimmed)})
		}
	}

	state.flushList()
	if state.inFence {
		// An unterminated fence still emits whatever it collected.
		state.flushCode()
	}

	return state.blocks
}
