// Package tokens estimates how many tokens a conversation occupies.
// Gemini does not publish a local tokenizer, so cl100k_base is used as a
// close-enough approximation for the footer display.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"gemterm/internal/conversation"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// Count returns the approximate token count of text, 0 on tokenizer
// failure. Display-only: never used for hard budget decisions.
func Count(text string) int {
	c, err := getCodec()
	if err != nil {
		return 0
	}
	ids, _, err := c.Encode(text)
	if err != nil {
		return 0
	}
	return len(ids)
}

// CountMessages sums the estimate across a conversation snapshot.
func CountMessages(msgs []conversation.Message) int {
	total := 0
	for _, m := range msgs {
		total += Count(m.Text)
	}
	return total
}
