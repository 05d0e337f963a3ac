// Package formatter turns raw transcripts into Markdown documents with
// deterministic rules: sentence splitting, paragraph grouping, and light
// structure detection.
package formatter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"video2md/internal/app/util/files"
)

// Result describes one formatted document.
type Result struct {
	Title          string
	Markdown       string
	OutputPath     string
	ParagraphCount int
}

var (
	sentenceEnd = regexp.MustCompile(`[。！？.!?]`)
	extraSpace  = regexp.MustCompile(`\s+`)

	headingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^第[一二三四五六七八九十\d]+[章节部分]`),
		regexp.MustCompile(`^[一二三四五六七八九十\d]+[、．.]`),
		regexp.MustCompile(`^[（(]\d+[）)]`),
	}
	listPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+[、．.]\s*`),
		regexp.MustCompile(`^[一二三四五六七八九十]+[、．.]\s*`),
		regexp.MustCompile(`^[（(][一二三四五六七八九十\d]+[）)]\s*`),
	}

	// Discourse markers that suggest a paragraph boundary.
	splitKeywords = []string{
		"接下来", "下面", "最后", "总结", "总之",
		"首先", "其次", "然后",
		"first of all", "secondly", "finally", "in conclusion", "to summarize",
	}
)

// paragraphRuneLimit bounds paragraph length before a forced break.
const paragraphRuneLimit = 200

// Formatter writes Markdown documents under outputDir.
type Formatter struct {
	outputDir string
	log       *zap.SugaredLogger
}

func New(outputDir string, log *zap.SugaredLogger) *Formatter {
	return &Formatter{outputDir: outputDir, log: log}
}

// Format renders text as a Markdown document named after title and writes
// it to the output directory.
func (f *Formatter) Format(text, title string) (*Result, error) {
	cleaned := cleanText(text)
	paragraphs := splitParagraphs(cleaned)
	markdown := render(paragraphs, title)

	outputPath := filepath.Join(f.outputDir, files.SanitizeTitle(title)+"_formatted.md")
	if err := files.WriteTextFile(outputPath, markdown); err != nil {
		return nil, fmt.Errorf("write formatted document: %w", err)
	}

	f.log.Infow("document formatted", "path", outputPath, "paragraphs", len(paragraphs))
	return &Result{
		Title:          title,
		Markdown:       markdown,
		OutputPath:     outputPath,
		ParagraphCount: len(paragraphs),
	}, nil
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "[音乐]", "")
	text = strings.ReplaceAll(text, "[掌声]", "")
	text = strings.ReplaceAll(text, "[笑声]", "")
	text = strings.ReplaceAll(text, "[Music]", "")
	text = strings.ReplaceAll(text, "[Applause]", "")
	return strings.TrimSpace(extraSpace.ReplaceAllString(text, " "))
}

// splitParagraphs cuts the text into sentences on terminal punctuation and
// groups them into paragraphs, breaking on length or discourse markers.
func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}

	ends := sentenceEnd.FindAllStringIndex(text, -1)
	var sentences []string
	prev := 0
	for _, loc := range ends {
		s := strings.TrimSpace(text[prev:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		prev = loc[1]
	}
	if tail := strings.TrimSpace(text[prev:]); tail != "" {
		sentences = append(sentences, tail)
	}

	var paragraphs []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)

		if shouldBreak(current.String()) {
			paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		paragraphs = append(paragraphs, s)
	}
	return paragraphs
}

func shouldBreak(paragraph string) bool {
	if len([]rune(paragraph)) > paragraphRuneLimit {
		return true
	}
	lower := strings.ToLower(paragraph)
	for _, kw := range splitKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isHeading(paragraph string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(paragraph) {
			return true
		}
	}
	return false
}

func isList(paragraph string) bool {
	for _, p := range listPatterns {
		if p.MatchString(paragraph) {
			return true
		}
	}
	return false
}

func render(paragraphs []string, title string) string {
	var lines []string
	lines = append(lines, "# "+title, "")

	headings := lo.Filter(paragraphs, func(p string, _ int) bool { return isHeading(p) })
	if len(headings) > 0 {
		lines = append(lines, "## Contents", "")
		for _, h := range headings {
			lines = append(lines, "- "+h)
		}
		lines = append(lines, "")
	}

	for _, paragraph := range paragraphs {
		switch {
		case isHeading(paragraph):
			lines = append(lines, "## "+paragraph, "")
		case isList(paragraph):
			lines = append(lines, "- "+paragraph)
		default:
			lines = append(lines, paragraph, "")
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
