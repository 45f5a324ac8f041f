package segment

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegment_Empty(t *testing.T) {
	got := Segment("")
	want := []Span{{Kind: Prose, Content: ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Segment(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_ProseOnly(t *testing.T) {
	text := "hello\nworld\n"
	got := Segment(text)
	want := []Span{{Kind: Prose, Content: text}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_CanonicalExample(t *testing.T) {
	text := "Here:\n```js\nconsole.log(1)\n```\ndone"
	got := Segment(text)
	want := []Span{
		{Kind: Prose, Content: "Here:\n"},
		{Kind: Code, Content: "console.log(1)"},
		{Kind: Prose, Content: "\ndone"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_MultipleBlocks(t *testing.T) {
	text := "a\n```go\nx := 1\n```\nb\n```\ny := 2\n```\nc"
	got := Segment(text)
	want := []Span{
		{Kind: Prose, Content: "a\n"},
		{Kind: Code, Content: "x := 1"},
		{Kind: Prose, Content: "\nb\n"},
		{Kind: Code, Content: "y := 2"},
		{Kind: Prose, Content: "\nc"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_AdjacentFences(t *testing.T) {
	// No empty prose span between back-to-back blocks.
	got := Segment("```a```" + "```b```")
	want := []Span{
		{Kind: Code, Content: "a"},
		{Kind: Code, Content: "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_OddFenceCount(t *testing.T) {
	inputs := []string{
		"```",
		"before ```go\nunclosed",
		"a ```b``` c ```d",
	}
	for _, text := range inputs {
		got := Segment(text)
		want := []Span{{Kind: Prose, Content: text}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Segment(%q) mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestSegment_OnlyEmptyFences(t *testing.T) {
	got := Segment("``````")
	want := []Span{{Kind: Prose, Content: ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_LanguageTagStripped(t *testing.T) {
	for tag, want := range map[string]string{
		"python": "print(1)",
		"c++":    "print(1)",
		"":       "print(1)",
	} {
		got := Segment("```" + tag + "\nprint(1)\n```")
		if len(got) != 1 || got[0].Kind != Code {
			t.Fatalf("tag %q: got %#v, want single code span", tag, got)
		}
		if got[0].Content != want {
			t.Fatalf("tag %q: Content = %q, want %q", tag, got[0].Content, want)
		}
	}
}

func TestSegment_FirstCodeLineNotATag(t *testing.T) {
	// A first line containing spaces is code, not a language tag.
	got := Segment("```\nx = 1\ny = 2\n```")
	want := []Span{{Kind: Code, Content: "x = 1\ny = 2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// Balanced tag-free fences with no padding whitespace reconstruct the
// original input when code spans are re-wrapped.
func TestSegment_Reconstruction(t *testing.T) {
	inputs := []string{
		"plain text",
		"a```code```b",
		"```one``` mid ```two``` end",
	}
	for _, text := range inputs {
		var sb strings.Builder
		for _, sp := range Segment(text) {
			if sp.Kind == Code {
				sb.WriteString("```" + sp.Content + "```")
			} else {
				sb.WriteString(sp.Content)
			}
		}
		if sb.String() != text {
			t.Fatalf("reconstruction of %q = %q", text, sb.String())
		}
	}
}

func TestSegment_Pure(t *testing.T) {
	text := "a\n```go\nb\n```\nc"
	first := Segment(text)
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, Segment(text)); diff != "" {
			t.Fatalf("call %d differs:\n%s", i, diff)
		}
	}
}
