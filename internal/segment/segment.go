// Package segment splits assistant message text into prose and fenced
// code regions for differentiated rendering. The splitter is a pure
// function: no I/O, no state, same input always yields the same spans.
package segment

import (
	"regexp"
	"strings"
)

// Kind labels a span as prose or code.
type Kind int

const (
	Prose Kind = iota
	Code
)

// String returns the lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case Code:
		return "code"
	default:
		return "prose"
	}
}

// Span is a contiguous labeled region of a message's text.
type Span struct {
	Kind    Kind
	Content string
}

const fence = "```"

// fenceRe matches a fenced region non-greedily, across line breaks.
var fenceRe = regexp.MustCompile("(?s)```(.*?)```")

// langTagRe matches an optional language-tag word immediately after the
// opening fence, up to the next line break.
var langTagRe = regexp.MustCompile(`^[A-Za-z0-9_+#.-]*\r?\n`)

// Segment splits text into an ordered sequence of prose and code spans.
// Code spans have the fences, an optional language tag, and surrounding
// whitespace stripped; prose spans are preserved verbatim. An unbalanced
// (odd) number of fence markers degrades gracefully: the whole input is
// returned as a single prose span. Empty input yields one empty prose
// span.
func Segment(text string) []Span {
	if text == "" {
		return []Span{{Kind: Prose, Content: ""}}
	}
	if strings.Count(text, fence)%2 != 0 {
		return []Span{{Kind: Prose, Content: text}}
	}

	var spans []Span
	rest := text
	for {
		loc := fenceRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if before := rest[:loc[0]]; before != "" {
			spans = append(spans, Span{Kind: Prose, Content: before})
		}
		if body := stripCode(rest[loc[2]:loc[3]]); body != "" {
			spans = append(spans, Span{Kind: Code, Content: body})
		}
		rest = rest[loc[1]:]
	}
	if rest != "" {
		spans = append(spans, Span{Kind: Prose, Content: rest})
	}
	if len(spans) == 0 {
		// Input was nothing but empty fences.
		return []Span{{Kind: Prose, Content: ""}}
	}
	return spans
}

// stripCode removes the optional language tag on the opening line and
// trims whitespace around the code body.
func stripCode(body string) string {
	if m := langTagRe.FindString(body); m != "" {
		body = body[len(m):]
	}
	return strings.TrimSpace(body)
}
