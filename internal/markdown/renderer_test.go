package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "heading paragraph and list",
			input: "# Title\n\nSome *em* and **strong** text.\n- a\n- b\n",
			want: []Block{
				{Type: BlockHeading, Level: 1, Text: "Title"},
				{Type: BlockParagraph, Text: "Some <em>em</em> and <strong>strong</strong> text."},
				{Type: BlockUnorderedList, Items: []string{"a", "b"}},
			},
		},
		{
			name:  "fence protects block markers",
			input: "```\n# not a heading\n```",
			want: []Block{
				{Type: BlockCode, Code: "# not a heading"},
			},
		},
		{
			name:  "heading level priority",
			input: "### h3\n## h2\n# h1",
			want: []Block{
				{Type: BlockHeading, Level: 3, Text: "h3"},
				{Type: BlockHeading, Level: 2, Text: "h2"},
				{Type: BlockHeading, Level: 1, Text: "h1"},
			},
		},
		{
			name:  "list type switch closes previous list",
			input: "- a\n1. b\n2. c",
			want: []Block{
				{Type: BlockUnorderedList, Items: []string{"a"}},
				{Type: BlockOrderedList, Items: []string{"b", "c"}},
			},
		},
		{
			name:  "ordered markers are not validated for sequence",
			input: "7. first\n3. second",
			want: []Block{
				{Type: BlockOrderedList, Items: []string{"first", "second"}},
			},
		},
		{
			name:  "asterisk bullet marker",
			input: "* one\n* two",
			want: []Block{
				{Type: BlockUnorderedList, Items: []string{"one", "two"}},
			},
		},
		{
			name:  "unterminated fence emits collected lines",
			input: "```\nline one\n\nline two",
			want: []Block{
				{Type: BlockCode, Code: "line one\n\nline two"},
			},
		},
		{
			name:  "fence inside document flushes open list",
			input: "- item\n```\ncode\n```\nafter",
			want: []Block{
				{Type: BlockUnorderedList, Items: []string{"item"}},
				{Type: BlockCode, Code: "code"},
				{Type: BlockParagraph, Text: "after"},
			},
		},
		{
			name:  "raw markup is escaped",
			input: "a <script> tag & **bold**",
			want: []Block{
				{Type: BlockParagraph, Text: "a &lt;script&gt; tag &amp; <strong>bold</strong>"},
			},
		},
		{
			name:  "inline formatting in headings and list items",
			input: "## A **strong** title\n- has *em* inside",
			want: []Block{
				{Type: BlockHeading, Level: 2, Text: "A <strong>strong</strong> title"},
				{Type: BlockUnorderedList, Items: []string{"has <em>em</em> inside"}},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	input := "# Title\n\ntext with **strong**\n- a\n1. b\n```\ncode\n```"
	first := Render(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(input))
	}
}
