// Package enhancer is the optional AI formatting pass. It is a pluggable
// text transform: providers rewrite a transcript into cleaner Markdown,
// and any failure falls back to the basic formatter output upstream.
package enhancer

import (
	"context"
	"fmt"
	"strings"
)

// Enhancer rewrites transcript text into polished Markdown.
type Enhancer interface {
	Enhance(ctx context.Context, text, title string) (string, error)
}

// EnhancementError wraps provider failures. Callers treat it as a warning,
// never as a job failure.
type EnhancementError struct {
	Provider string
	Err      error
}

func (e *EnhancementError) Error() string {
	return fmt.Sprintf("ai enhancement failed (%s): %v", e.Provider, e.Err)
}

func (e *EnhancementError) Unwrap() error { return e.Err }

const promptTemplate = `Rewrite the following transcript as a clear, well-structured document.

Requirements:
1. Fix typos, grammar and punctuation
2. Reorganize paragraphs and add appropriate headings
3. Convert spoken phrasing into written language
4. Keep the original points and their order
5. Output Markdown only, with no commentary around it

Transcript:
%s`

// BuildPrompt fills the rewrite prompt with the transcript text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// EnsureTitle prepends a level-1 heading when the model output lacks one.
func EnsureTitle(markdown, title string) string {
	trimmed := strings.TrimSpace(markdown)
	if strings.HasPrefix(trimmed, "#") {
		return trimmed + "\n"
	}
	return fmt.Sprintf("# %s\n\n%s\n", title, trimmed)
}
